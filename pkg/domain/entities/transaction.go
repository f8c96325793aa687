package entities

import "time"

// TransactionKind identifies the type of a stock movement
type TransactionKind int

const (
	TransactionAdd TransactionKind = iota
	TransactionAllocate
	TransactionReturn
)

// String method for TransactionKind enum
func (k TransactionKind) String() string {
	switch k {
	case TransactionAdd:
		return "Add"
	case TransactionAllocate:
		return "Allocate"
	case TransactionReturn:
		return "Return"
	default:
		return "Unknown"
	}
}

// TransactionRecord is an immutable ledger log entry. Records are
// append-only and totally ordered by Sequence; Timestamp is informational
// and not required to be monotonic across entries.
type TransactionRecord struct {
	Sequence  int             `json:"sequence"`
	ISBN      string          `json:"isbn"`
	Quantity  int             `json:"quantity"`
	Kind      TransactionKind `json:"kind"`
	Timestamp time.Time       `json:"timestamp"`
}
