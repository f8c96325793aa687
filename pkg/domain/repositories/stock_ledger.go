package repositories

import (
	"errors"

	"github.com/mkandula/bookdist/pkg/domain/entities"
)

var (
	// ErrInvalidQuantity is returned for non-positive or out-of-bound quantities.
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrNotFound is returned when an item or registry key is unknown.
	ErrNotFound = errors.New("not found")
)

// StockLedger is the thread-safe store of available stock per ISBN.
// Every mutation appends an immutable TransactionRecord. Insufficient
// stock is an expected outcome and surfaces as the TryDebit boolean,
// never as an error.
type StockLedger interface {
	// Add creates the entry if absent, otherwise increments it.
	Add(isbn string, quantity int) error

	// TryDebit atomically checks availability and decrements. It returns
	// (false, nil) when stock is insufficient and an error only for
	// invalid quantities or unknown ISBNs; no state changes on failure.
	TryDebit(isbn string, quantity int) (bool, error)

	// Credit increases availability, used by the loan-return collaborator.
	Credit(isbn string, quantity int) error

	// AvailableQuantity is a point-in-time snapshot read; 0 for unknown ISBNs.
	AvailableQuantity(isbn string) int

	// TotalStock returns the sum of available quantities across all entries.
	TotalStock() int

	// Snapshot returns a copy of all entries as ISBN to available quantity.
	Snapshot() map[string]int

	// TransactionHistory returns the append-only log, oldest first.
	TransactionHistory() []entities.TransactionRecord
}
