package allocation

import (
	"context"
	"sort"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

// Move records one committed debit+fulfillment pair performed during a pass.
type Move struct {
	InstitutionID string
	RequestID     string
	ISBN          string
	Quantity      int
}

// PassStats summarizes what a strategy did in one pass. Skipped counts
// requests dropped for validation failures (unknown title, bad quantity)
// so they remain observable in the pass result.
type PassStats struct {
	Moves          []Move
	AllocatedUnits int
	DebitFailures  int
	Skipped        int
}

// Strategy decides how available stock is divided among the pending and
// partially fulfilled requests of the given institutions. One Run call is
// one allocation pass; the coordinator guarantees at most one pass runs
// at a time.
type Strategy interface {
	Name() string
	Run(ctx context.Context, ledger repositories.StockLedger, institutions []*entities.Institution) (PassStats, error)
}

// candidate pairs an open request with its owning institution.
type candidate struct {
	institution *entities.Institution
	request     *entities.AllocationRequest
}

// openRequests collects every allocatable request across institutions,
// preserving institution order and per-institution submission order.
func openRequests(institutions []*entities.Institution) []candidate {
	var out []candidate
	for _, inst := range institutions {
		for _, req := range inst.PendingOrPartial() {
			out = append(out, candidate{institution: inst, request: req})
		}
	}
	return out
}

// groupByISBN buckets candidates by requested title. Keys are returned
// sorted so per-item processing order is deterministic.
func groupByISBN(candidates []candidate) (map[string][]candidate, []string) {
	groups := make(map[string][]candidate)
	for _, c := range candidates {
		groups[c.request.ISBN] = append(groups[c.request.ISBN], c)
	}

	keys := make([]string, 0, len(groups))
	for isbn := range groups {
		keys = append(keys, isbn)
	}
	sort.Strings(keys)
	return groups, keys
}

// commit performs one debit+fulfillment unit: the institution is credited
// and the request fulfilled only when the ledger debit succeeds. The
// returned error is non-nil only for validation failures (unknown ISBN,
// bad quantity), which callers skip without aborting the pass.
func commit(ledger repositories.StockLedger, c candidate, qty int, stats *PassStats) error {
	ok, err := ledger.TryDebit(c.request.ISBN, qty)
	if err != nil {
		return err
	}
	if !ok {
		stats.DebitFailures++
		return nil
	}

	c.institution.Receive(c.request.ISBN, qty)
	c.request.FulfillPartial(qty)
	stats.Moves = append(stats.Moves, Move{
		InstitutionID: c.institution.ID,
		RequestID:     c.request.ID,
		ISBN:          c.request.ISBN,
		Quantity:      qty,
	})
	stats.AllocatedUnits += qty
	return nil
}
