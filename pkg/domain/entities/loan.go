package entities

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLoanTerm is how long institutions keep distributed books
// before they are due back to the central inventory.
const DefaultLoanTerm = 180 * 24 * time.Hour

// Loan records a quantity of one title issued to an institution, due back
// by DueDate. Returning the loan credits the stock ledger.
type Loan struct {
	ID            string
	ISBN          string
	InstitutionID string
	Quantity      int
	IssuedAt      time.Time
	DueDate       time.Time

	mu         sync.Mutex
	returned   bool
	returnedAt time.Time
}

// NewLoan creates a validated Loan with the given term.
func NewLoan(isbn, institutionID string, quantity int, term time.Duration) (*Loan, error) {
	if !ValidISBN(isbn) {
		return nil, fmt.Errorf("invalid ISBN format: %q", isbn)
	}
	if institutionID == "" {
		return nil, fmt.Errorf("institution id cannot be empty")
	}
	if !ValidQuantity(quantity) {
		return nil, fmt.Errorf("quantity must be between 1 and %d, got %d", MaxQuantity-1, quantity)
	}
	if term <= 0 {
		term = DefaultLoanTerm
	}

	now := time.Now()
	return &Loan{
		ID:            uuid.NewString(),
		ISBN:          isbn,
		InstitutionID: institutionID,
		Quantity:      quantity,
		IssuedAt:      now,
		DueDate:       now.Add(term),
	}, nil
}

// Returned reports whether the loan has been returned.
func (l *Loan) Returned() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.returned
}

// MarkReturned records the return. It fails if the loan was already returned.
func (l *Loan) MarkReturned() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.returned {
		return fmt.Errorf("loan %s already returned", l.ID)
	}
	l.returned = true
	l.returnedAt = time.Now()
	return nil
}

// Overdue reports whether the loan is unreturned past its due date.
func (l *Loan) Overdue(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.returned && now.After(l.DueDate)
}

// DaysOverdue returns how many whole days the loan is past due, or 0.
func (l *Loan) DaysOverdue(now time.Time) int {
	if !l.Overdue(now) {
		return 0
	}
	return int(now.Sub(l.DueDate).Hours() / 24)
}
