package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category classifies a book within the national catalog
type Category int

const (
	Textbook Category = iota
	Reference
	Literature
	Science
	History
	Mathematics
	Language
	Vocational
)

// String method for Category enum
func (c Category) String() string {
	switch c {
	case Textbook:
		return "Textbook"
	case Reference:
		return "Reference"
	case Literature:
		return "Literature"
	case Science:
		return "Science"
	case History:
		return "History"
	case Mathematics:
		return "Mathematics"
	case Language:
		return "Language"
	case Vocational:
		return "Vocational"
	default:
		return "Unknown"
	}
}

// ParseCategory converts a category name into a Category value
func ParseCategory(s string) (Category, error) {
	for c := Textbook; c <= Vocational; c++ {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category: %q", s)
}

// Book represents an immutable catalog entry identified by ISBN
type Book struct {
	ISBN            string
	Title           string
	Author          string
	Category        Category
	PublicationYear int
	Publisher       string
	Price           decimal.Decimal
}

// NewBook creates a validated Book
func NewBook(
	isbn, title, author string,
	category Category,
	year int,
	publisher string,
	price decimal.Decimal,
) (*Book, error) {
	if !ValidISBN(isbn) {
		return nil, fmt.Errorf("invalid ISBN format: %q", isbn)
	}
	if title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}
	if !ValidYear(year) {
		return nil, fmt.Errorf("publication year out of range: %d", year)
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s", price)
	}

	return &Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Category:        category,
		PublicationYear: year,
		Publisher:       publisher,
		Price:           price,
	}, nil
}

// ValidISBN reports whether isbn is 10 or 13 digits, ignoring hyphens.
func ValidISBN(isbn string) bool {
	cleaned := strings.ReplaceAll(isbn, "-", "")
	if len(cleaned) != 10 && len(cleaned) != 13 {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidYear reports whether year falls in the accepted publication range.
func ValidYear(year int) bool {
	return year >= 1900 && year <= 2100
}

// MaxQuantity is the sane upper bound for any single stock movement.
const MaxQuantity = 1_000_000

// ValidQuantity reports whether q is a usable stock quantity (0 < q < MaxQuantity).
func ValidQuantity(q int) bool {
	return q > 0 && q < MaxQuantity
}
