package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mkandula/bookdist/pkg/domain/entities"
)

// Loader handles loading distribution scenario data from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// BookStock pairs a catalog entry with its initial stock quantity.
type BookStock struct {
	Book     *entities.Book
	Quantity int
}

// RequestLine is one request row from a scenario file.
type RequestLine struct {
	InstitutionID string
	ISBN          string
	Quantity      int
	Priority      entities.Priority
}

// LoadBooks loads catalog entries and initial stock from a CSV file
func (l *Loader) LoadBooks(filename string) ([]BookStock, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("books CSV: %w", err)
	}

	expectedHeader := []string{"isbn", "title", "author", "category", "year", "publisher", "price", "quantity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("books CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var books []BookStock
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("books CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		book, quantity, err := parseBook(record)
		if err != nil {
			return nil, fmt.Errorf("books CSV row %d: %w", i+2, err)
		}
		books = append(books, BookStock{Book: book, Quantity: quantity})
	}

	return books, nil
}

// LoadInstitutions loads institutions from a CSV file
func (l *Loader) LoadInstitutions(filename string) ([]*entities.Institution, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("institutions CSV: %w", err)
	}

	expectedHeader := []string{"id", "name", "type", "location", "students"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("institutions CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var institutions []*entities.Institution
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("institutions CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		institution, err := parseInstitution(record)
		if err != nil {
			return nil, fmt.Errorf("institutions CSV row %d: %w", i+2, err)
		}
		institutions = append(institutions, institution)
	}

	return institutions, nil
}

// LoadRequests loads request lines from a CSV file
func (l *Loader) LoadRequests(filename string) ([]RequestLine, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("requests CSV: %w", err)
	}

	expectedHeader := []string{"institution_id", "isbn", "quantity", "priority"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("requests CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var lines []RequestLine
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("requests CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		line, err := parseRequest(record)
		if err != nil {
			return nil, fmt.Errorf("requests CSV row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s must have header and at least one data row", filename)
	}
	return records, nil
}

func parseBook(record []string) (*entities.Book, int, error) {
	category, err := entities.ParseCategory(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, 0, err
	}
	year, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid year %q: %w", record[4], err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(record[6]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid price %q: %w", record[6], err)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(record[7]))
	if err != nil {
		return nil, 0, fmt.Errorf("invalid quantity %q: %w", record[7], err)
	}

	book, err := entities.NewBook(
		strings.TrimSpace(record[0]),
		strings.TrimSpace(record[1]),
		strings.TrimSpace(record[2]),
		category,
		year,
		strings.TrimSpace(record[5]),
		price,
	)
	if err != nil {
		return nil, 0, err
	}
	return book, quantity, nil
}

func parseInstitution(record []string) (*entities.Institution, error) {
	institutionType, err := parseInstitutionType(strings.TrimSpace(record[2]))
	if err != nil {
		return nil, err
	}
	students, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return nil, fmt.Errorf("invalid student count %q: %w", record[4], err)
	}

	return entities.NewInstitution(
		strings.TrimSpace(record[0]),
		strings.TrimSpace(record[1]),
		institutionType,
		strings.TrimSpace(record[3]),
		students,
	)
}

func parseRequest(record []string) (RequestLine, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return RequestLine{}, fmt.Errorf("invalid quantity %q: %w", record[2], err)
	}
	priority, err := entities.ParsePriority(strings.TrimSpace(record[3]))
	if err != nil {
		return RequestLine{}, err
	}

	return RequestLine{
		InstitutionID: strings.TrimSpace(record[0]),
		ISBN:          strings.TrimSpace(record[1]),
		Quantity:      quantity,
		Priority:      priority,
	}, nil
}

func parseInstitutionType(s string) (entities.InstitutionType, error) {
	for t := entities.PrimarySchool; t <= entities.ResearchCenter; t++ {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown institution type: %q", s)
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, h := range header {
		if strings.TrimSpace(strings.ToLower(h)) != expected[i] {
			return false
		}
	}
	return true
}
