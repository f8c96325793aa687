package allocation

import (
	"container/heap"
	"context"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

// PriorityGreedy allocates strictly by priority: a Critical request is
// served completely before any Low request sees a single unit, regardless
// of size or arrival time. Equal priorities are ordered by submission
// time, then request ID, so pass output is deterministic.
type PriorityGreedy struct{}

// NewPriorityGreedy creates the priority-greedy strategy.
func NewPriorityGreedy() *PriorityGreedy {
	return &PriorityGreedy{}
}

// Verify interface compliance
var _ Strategy = (*PriorityGreedy)(nil)

// Name returns the strategy's display name.
func (s *PriorityGreedy) Name() string { return "priority-greedy" }

// Run pops requests off a global max-heap ordered by priority. For each
// request it allocates min(remaining, available); requests whose title is
// out of stock are dropped from the pass, not requeued.
func (s *PriorityGreedy) Run(ctx context.Context, ledger repositories.StockLedger, institutions []*entities.Institution) (PassStats, error) {
	var stats PassStats

	pq := make(requestHeap, 0)
	for _, c := range openRequests(institutions) {
		pq = append(pq, c)
	}
	heap.Init(&pq)

	for pq.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		c := heap.Pop(&pq).(candidate)

		available := ledger.AvailableQuantity(c.request.ISBN)
		if available <= 0 {
			continue
		}

		qty := c.request.Remaining()
		if qty > available {
			qty = available
		}
		if qty <= 0 {
			continue
		}

		// Validation failures skip this request; the pass continues.
		if err := commit(ledger, c, qty, &stats); err != nil {
			stats.Skipped++
		}
	}

	return stats, nil
}

// requestHeap is a max-heap over (priority desc, submittedAt asc, ID asc).
type requestHeap []candidate

func (h requestHeap) Len() int { return len(h) }

func (h requestHeap) Less(i, j int) bool {
	a, b := h[i].request, h[j].request
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.Before(b.SubmittedAt)
	}
	return a.ID < b.ID
}

func (h requestHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *requestHeap) Push(x interface{}) {
	*h = append(*h, x.(candidate))
}

func (h *requestHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
