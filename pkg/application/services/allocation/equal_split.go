package allocation

import (
	"context"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

// EqualSplit divides each title's available stock evenly across the
// requesters needing it, indifferent to priority or size of need. When
// floor(available / requesters) is zero the title is skipped entirely;
// there is no sub-unit allocation.
type EqualSplit struct{}

// NewEqualSplit creates the equal-split strategy.
func NewEqualSplit() *EqualSplit {
	return &EqualSplit{}
}

// Verify interface compliance
var _ Strategy = (*EqualSplit)(nil)

// Name returns the strategy's display name.
func (s *EqualSplit) Name() string { return "equal-split" }

// Run groups open requests by title and allocates min(perRequester, remaining)
// to every requester needing the title.
func (s *EqualSplit) Run(ctx context.Context, ledger repositories.StockLedger, institutions []*entities.Institution) (PassStats, error) {
	var stats PassStats

	groups, isbns := groupByISBN(openRequests(institutions))
	for _, isbn := range isbns {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		group := groups[isbn]

		available := ledger.AvailableQuantity(isbn)
		if available <= 0 {
			continue
		}

		perRequester := available / len(group)
		if perRequester <= 0 {
			continue
		}

		for _, c := range group {
			qty := c.request.Remaining()
			if qty > perRequester {
				qty = perRequester
			}
			if qty <= 0 {
				continue
			}
			if err := commit(ledger, c, qty, &stats); err != nil {
				stats.Skipped++
			}
		}
	}

	return stats, nil
}
