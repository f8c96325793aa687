package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

func TestInstitutionRepository_RegisterAndList(t *testing.T) {
	repo := NewInstitutionRepository()

	b, err := entities.NewInstitution("INST-B", "City College", entities.College, "Nagpur", 900)
	require.NoError(t, err)
	a, err := entities.NewInstitution("INST-A", "Central School", entities.HighSchool, "Pune", 1200)
	require.NoError(t, err)

	require.NoError(t, repo.Register(b))
	require.NoError(t, repo.Register(a))
	require.Error(t, repo.Register(a), "duplicate registration must fail")

	assert.Equal(t, 2, repo.Count())

	got, err := repo.Get("INST-A")
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = repo.Get("INST-X")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	list := repo.List()
	require.Len(t, list, 2)
	assert.Equal(t, "INST-A", list[0].ID, "List must be ordered by ID")
	assert.Equal(t, "INST-B", list[1].ID)
}

func TestLoanRepository_SaveAndQuery(t *testing.T) {
	repo := NewLoanRepository()

	first, err := entities.NewLoan(testISBN, "INST-A", 10, 0)
	require.NoError(t, err)
	second, err := entities.NewLoan(testISBN, "INST-B", 5, 0)
	require.NoError(t, err)

	require.NoError(t, repo.Save(first))
	require.NoError(t, repo.Save(second))
	require.Error(t, repo.Save(first), "duplicate save must fail")

	got, err := repo.Get(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = repo.Get("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	assert.Len(t, repo.List(), 2)

	byInst := repo.ByInstitution("INST-B")
	require.Len(t, byInst, 1)
	assert.Equal(t, second.ID, byInst[0].ID)
}
