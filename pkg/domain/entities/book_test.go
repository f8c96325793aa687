package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewBook_Validation(t *testing.T) {
	price := decimal.NewFromInt(250)

	validBook, err := NewBook("978-0-13-468599-1", "Mathematics X", "R. Sharma", Mathematics, 2021, "National Press", price)
	if err != nil {
		t.Fatalf("Expected valid book creation to succeed: %v", err)
	}
	if validBook.Title != "Mathematics X" {
		t.Errorf("Expected title Mathematics X, got %s", validBook.Title)
	}

	// Test validation failures
	testCases := []struct {
		name  string
		isbn  string
		title string
		year  int
		price decimal.Decimal
	}{
		{"invalid ISBN letters", "97X-0-13-468599", "T", 2021, price},
		{"invalid ISBN length", "1234", "T", 2021, price},
		{"empty title", "978-0-13-468599-1", "", 2021, price},
		{"year too early", "978-0-13-468599-1", "T", 1899, price},
		{"year too late", "978-0-13-468599-1", "T", 2101, price},
		{"negative price", "978-0-13-468599-1", "T", 2021, decimal.NewFromInt(-1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBook(tc.isbn, tc.title, "A", Textbook, tc.year, "P", tc.price)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
		})
	}
}

func TestValidISBN(t *testing.T) {
	testCases := []struct {
		isbn  string
		valid bool
	}{
		{"0306406152", true},
		{"978-0-306-40615-7", true},
		{"9780306406157", true},
		{"978030640615", false},
		{"03064061a2", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := ValidISBN(tc.isbn); got != tc.valid {
			t.Errorf("ValidISBN(%q) = %v, want %v", tc.isbn, got, tc.valid)
		}
	}
}

func TestValidQuantity(t *testing.T) {
	testCases := []struct {
		qty   int
		valid bool
	}{
		{1, true},
		{999_999, true},
		{0, false},
		{-5, false},
		{1_000_000, false},
	}

	for _, tc := range testCases {
		if got := ValidQuantity(tc.qty); got != tc.valid {
			t.Errorf("ValidQuantity(%d) = %v, want %v", tc.qty, got, tc.valid)
		}
	}
}

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("science")
	if err != nil {
		t.Fatalf("Expected parse to succeed: %v", err)
	}
	if category != Science {
		t.Errorf("Expected Science, got %v", category)
	}

	if _, err := ParseCategory("astrology"); err == nil {
		t.Error("Expected error for unknown category")
	}
}
