package allocation

import (
	"sync"
	"time"

	"github.com/mkandula/bookdist/pkg/domain/entities"
)

// WaitlistEntry records one institution waiting on stock for a title.
type WaitlistEntry struct {
	InstitutionID string
	ISBN          string
	Quantity      int
	Priority      entities.Priority
	EnqueuedAt    time.Time
}

// Waitlist tracks, per title, the institutions whose submissions exceeded
// the availability at submission time. Entries are FIFO per title.
type Waitlist struct {
	mu     sync.Mutex
	queues map[string][]WaitlistEntry
}

// NewWaitlist creates an empty waitlist.
func NewWaitlist() *Waitlist {
	return &Waitlist{queues: make(map[string][]WaitlistEntry)}
}

// Add enqueues an institution for a title.
func (w *Waitlist) Add(isbn, institutionID string, quantity int, priority entities.Priority) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.queues[isbn] = append(w.queues[isbn], WaitlistEntry{
		InstitutionID: institutionID,
		ISBN:          isbn,
		Quantity:      quantity,
		Priority:      priority,
		EnqueuedAt:    time.Now(),
	})
}

// Waiting returns the queued entries for a title in enqueue order.
func (w *Waitlist) Waiting(isbn string) []WaitlistEntry {
	w.mu.Lock()
	defer w.mu.Unlock()

	queue := w.queues[isbn]
	out := make([]WaitlistEntry, len(queue))
	copy(out, queue)
	return out
}

// Count returns how many institutions wait on a title.
func (w *Waitlist) Count(isbn string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.queues[isbn])
}

// Depth returns the total number of queued entries across all titles.
func (w *Waitlist) Depth() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	total := 0
	for _, queue := range w.queues {
		total += len(queue)
	}
	return total
}

// Remove drops all entries of one institution for a title, typically
// after its request was fulfilled.
func (w *Waitlist) Remove(isbn, institutionID string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	queue := w.queues[isbn]
	kept := queue[:0]
	for _, e := range queue {
		if e.InstitutionID != institutionID {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(w.queues, isbn)
		return
	}
	w.queues[isbn] = kept
}
