package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkandula/bookdist/pkg/domain/entities"
)

func writeTempCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoader_LoadBooks(t *testing.T) {
	path := writeTempCSV(t, "books.csv", `isbn,title,author,category,year,publisher,price,quantity
978-0-13-468599-1,Mathematics X,R. Sharma,Mathematics,2021,NBDE Press,250.50,500
9780306406157,Physics XI,H. Verma,Science,2020,NBDE Press,300,200
`)

	books, err := NewLoader().LoadBooks(path)
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "978-0-13-468599-1", books[0].Book.ISBN)
	assert.Equal(t, "Mathematics X", books[0].Book.Title)
	assert.Equal(t, entities.Mathematics, books[0].Book.Category)
	assert.Equal(t, "250.5", books[0].Book.Price.String())
	assert.Equal(t, 500, books[0].Quantity)
	assert.Equal(t, 200, books[1].Quantity)
}

func TestLoader_LoadBooks_Errors(t *testing.T) {
	loader := NewLoader()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "wrong header",
			content: "title,isbn\nMathematics X,978-0-13-468599-1\n",
		},
		{
			name:    "missing data rows",
			content: "isbn,title,author,category,year,publisher,price,quantity\n",
		},
		{
			name:    "bad category",
			content: "isbn,title,author,category,year,publisher,price,quantity\n978-0-13-468599-1,Math,A,Fiction,2021,P,10,5\n",
		},
		{
			name:    "bad year",
			content: "isbn,title,author,category,year,publisher,price,quantity\n978-0-13-468599-1,Math,A,Science,abc,P,10,5\n",
		},
		{
			name:    "invalid isbn",
			content: "isbn,title,author,category,year,publisher,price,quantity\nnot-an-isbn,Math,A,Science,2021,P,10,5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempCSV(t, "books.csv", tt.content)
			_, err := loader.LoadBooks(path)
			assert.Error(t, err)
		})
	}
}

func TestLoader_LoadBooks_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadBooks(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestLoader_LoadInstitutions(t *testing.T) {
	path := writeTempCSV(t, "institutions.csv", `id,name,type,location,students
INST-A,Nehru High School,High School,Pune,1200
INST-B,State Library,Library,Nagpur,0
`)

	institutions, err := NewLoader().LoadInstitutions(path)
	require.NoError(t, err)
	require.Len(t, institutions, 2)

	assert.Equal(t, "INST-A", institutions[0].ID)
	assert.Equal(t, entities.HighSchool, institutions[0].Type)
	assert.Equal(t, 1200, institutions[0].StudentCount)
	assert.Equal(t, entities.Library, institutions[1].Type)
}

func TestLoader_LoadInstitutions_UnknownType(t *testing.T) {
	path := writeTempCSV(t, "institutions.csv", `id,name,type,location,students
INST-A,School,Hogwarts,Pune,100
`)
	_, err := NewLoader().LoadInstitutions(path)
	assert.Error(t, err)
}

func TestLoader_LoadRequests(t *testing.T) {
	path := writeTempCSV(t, "requests.csv", `institution_id,isbn,quantity,priority
INST-A,978-0-13-468599-1,300,Critical
INST-B,978-0-13-468599-1,250,Medium
`)

	lines, err := NewLoader().LoadRequests(path)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, "INST-A", lines[0].InstitutionID)
	assert.Equal(t, 300, lines[0].Quantity)
	assert.Equal(t, entities.Critical, lines[0].Priority)
	assert.Equal(t, entities.Medium, lines[1].Priority)
}

func TestLoader_LoadRequests_BadPriority(t *testing.T) {
	path := writeTempCSV(t, "requests.csv", `institution_id,isbn,quantity,priority
INST-A,978-0-13-468599-1,300,Urgent
`)
	_, err := NewLoader().LoadRequests(path)
	assert.Error(t, err)
}

func TestLoader_HeaderIsCaseInsensitive(t *testing.T) {
	path := writeTempCSV(t, "requests.csv", `Institution_ID, ISBN ,Quantity,Priority
INST-A,978-0-13-468599-1,10,Low
`)
	lines, err := NewLoader().LoadRequests(path)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}
