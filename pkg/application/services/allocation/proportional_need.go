package allocation

import (
	"context"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

// ProportionalNeed rations each title's available stock across requesters
// in proportion to remaining need: share = floor(available * remaining / totalNeed).
// Floor rounding can leave units unallocated; the leftover is not
// redistributed within the same pass and stays available for the next one.
type ProportionalNeed struct{}

// NewProportionalNeed creates the proportional-by-need strategy.
func NewProportionalNeed() *ProportionalNeed {
	return &ProportionalNeed{}
}

// Verify interface compliance
var _ Strategy = (*ProportionalNeed)(nil)

// Name returns the strategy's display name.
func (s *ProportionalNeed) Name() string { return "proportional-need" }

// Run groups open requests by title and hands each requester its floored
// proportional share, clamped to its remaining need.
func (s *ProportionalNeed) Run(ctx context.Context, ledger repositories.StockLedger, institutions []*entities.Institution) (PassStats, error) {
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

		totalNeed := 0
		remaining := make([]int, len(group))
		for i, c := range group {
			remaining[i] = c.request.Remaining()
			totalNeed += remaining[i]
		}
		if totalNeed <= 0 {
			continue
		}

		for i, c := range group {
			share := available * remaining[i] / totalNeed
			if share > remaining[i] {
				share = remaining[i]
			}
			if share <= 0 {
				continue
			}
			if err := commit(ledger, c, share, &stats); err != nil {
				stats.Skipped++
			}
		}
	}

	return stats, nil
}
