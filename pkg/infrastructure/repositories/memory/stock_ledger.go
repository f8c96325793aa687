package memory

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

// StockLedger provides in-memory, mutex-guarded stock storage with an
// append-only transaction log. Entries are owned exclusively by the
// ledger; callers only ever see copied values.
type StockLedger struct {
	mu      sync.Mutex
	entries map[string]int
	log     []entities.TransactionRecord
	logger  *zap.Logger
}

// NewStockLedger creates an empty in-memory stock ledger. A nil logger
// disables logging.
func NewStockLedger(logger *zap.Logger) *StockLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockLedger{
		entries: make(map[string]int),
		logger:  logger,
	}
}

// Verify interface compliance
var _ repositories.StockLedger = (*StockLedger)(nil)

// Add creates the entry if absent, otherwise increments availability.
func (l *StockLedger) Add(isbn string, quantity int) error {
	if !entities.ValidQuantity(quantity) {
		return fmt.Errorf("add %q: %w: %d", isbn, repositories.ErrInvalidQuantity, quantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[isbn] += quantity
	l.append(isbn, quantity, entities.TransactionAdd)

	l.logger.Info("stock added",
		zap.String("isbn", isbn),
		zap.Int("quantity", quantity),
		zap.Int("available", l.entries[isbn]))
	return nil
}

// TryDebit atomically checks availability and decrements. The check and
// decrement happen under one lock acquisition so concurrent debits can
// never jointly overdraw an entry.
func (l *StockLedger) TryDebit(isbn string, quantity int) (bool, error) {
	if !entities.ValidQuantity(quantity) {
		return false, fmt.Errorf("debit %q: %w: %d", isbn, repositories.ErrInvalidQuantity, quantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	available, exists := l.entries[isbn]
	if !exists {
		return false, fmt.Errorf("debit %q: %w", isbn, repositories.ErrNotFound)
	}
	if available < quantity {
		return false, nil
	}

	l.entries[isbn] = available - quantity
	l.append(isbn, -quantity, entities.TransactionAllocate)

	l.logger.Info("stock allocated",
		zap.String("isbn", isbn),
		zap.Int("quantity", quantity),
		zap.Int("available", l.entries[isbn]))
	return true, nil
}

// Credit increases availability for a known entry. Unknown ISBNs fail
// with ErrNotFound and leave the ledger unchanged.
func (l *StockLedger) Credit(isbn string, quantity int) error {
	if !entities.ValidQuantity(quantity) {
		return fmt.Errorf("credit %q: %w: %d", isbn, repositories.ErrInvalidQuantity, quantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.entries[isbn]; !exists {
		return fmt.Errorf("credit %q: %w", isbn, repositories.ErrNotFound)
	}

	l.entries[isbn] += quantity
	l.append(isbn, quantity, entities.TransactionReturn)

	l.logger.Info("stock returned",
		zap.String("isbn", isbn),
		zap.Int("quantity", quantity),
		zap.Int("available", l.entries[isbn]))
	return nil
}

// AvailableQuantity returns the point-in-time availability for an ISBN.
func (l *StockLedger) AvailableQuantity(isbn string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[isbn]
}

// TotalStock returns the sum of available quantities across all entries.
func (l *StockLedger) TotalStock() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, qty := range l.entries {
		total += qty
	}
	return total
}

// Snapshot returns a copy of all entries as ISBN to available quantity.
func (l *StockLedger) Snapshot() map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := make(map[string]int, len(l.entries))
	for isbn, qty := range l.entries {
		snap[isbn] = qty
	}
	return snap
}

// TransactionHistory returns a copy of the append-only log, oldest first.
func (l *StockLedger) TransactionHistory() []entities.TransactionRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := make([]entities.TransactionRecord, len(l.log))
	copy(history, l.log)
	return history
}

// append records a log entry. Callers must hold l.mu.
func (l *StockLedger) append(isbn string, delta int, kind entities.TransactionKind) {
	l.log = append(l.log, entities.TransactionRecord{
		Sequence:  len(l.log) + 1,
		ISBN:      isbn,
		Quantity:  delta,
		Kind:      kind,
		Timestamp: time.Now(),
	})
}
