package allocation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/infrastructure/repositories/memory"
)

func TestEqualSplit_EvenShares(t *testing.T) {
	ledger := memory.NewStockLedger(nil)
	require.NoError(t, ledger.Add(mathISBN, 90))

	a := newTestInstitution(t, "INST-A")
	b := newTestInstitution(t, "INST-B")
	c := newTestInstitution(t, "INST-C")

	reqA, err := a.Submit(mathISBN, 100, entities.Critical)
	require.NoError(t, err)
	reqB, err := b.Submit(mathISBN, 100, entities.Low)
	require.NoError(t, err)
	reqC, err := c.Submit(mathISBN, 100, entities.Medium)
	require.NoError(t, err)

	stats, err := NewEqualSplit().Run(context.Background(), ledger, []*entities.Institution{a, b, c})
	require.NoError(t, err)

	// Priority is irrelevant: everyone gets floor(90 / 3).
	assert.Equal(t, 30, reqA.QuantityFulfilled())
	assert.Equal(t, 30, reqB.QuantityFulfilled())
	assert.Equal(t, 30, reqC.QuantityFulfilled())
	assert.Equal(t, 90, stats.AllocatedUnits)
}

func TestEqualSplit_ZeroShareSkipsTitle(t *testing.T) {
	ledger := memory.NewStockLedger(nil)
	require.NoError(t, ledger.Add(mathISBN, 2))

	a := newTestInstitution(t, "INST-A")
	b := newTestInstitution(t, "INST-B")
	c := newTestInstitution(t, "INST-C")

	var requests []*entities.AllocationRequest
	for _, inst := range []*entities.Institution{a, b, c} {
		req, err := inst.Submit(mathISBN, 10, entities.Medium)
		require.NoError(t, err)
		requests = append(requests, req)
	}

	stats, err := NewEqualSplit().Run(context.Background(), ledger, []*entities.Institution{a, b, c})
	require.NoError(t, err)

	// floor(2 / 3) == 0: nothing moves, everyone stays pending.
	assert.Equal(t, 0, stats.AllocatedUnits)
	assert.Empty(t, stats.Moves)
	assert.Equal(t, 2, ledger.AvailableQuantity(mathISBN))
	for _, req := range requests {
		assert.Equal(t, entities.Pending, req.Status())
	}
}

func TestEqualSplit_ShareClampedToRemaining(t *testing.T) {
	ledger := memory.NewStockLedger(nil)
	require.NoError(t, ledger.Add(mathISBN, 100))

	a := newTestInstitution(t, "INST-A")
	b := newTestInstitution(t, "INST-B")

	small, err := a.Submit(mathISBN, 5, entities.Medium)
	require.NoError(t, err)
	big, err := b.Submit(mathISBN, 200, entities.Medium)
	require.NoError(t, err)

	_, err = NewEqualSplit().Run(context.Background(), ledger, []*entities.Institution{a, b})
	require.NoError(t, err)

	// perRequester is 50; the small request takes only what it needs.
	assert.Equal(t, 5, small.QuantityFulfilled())
	assert.Equal(t, entities.Fulfilled, small.Status())
	assert.Equal(t, 50, big.QuantityFulfilled())
	assert.Equal(t, entities.PartiallyFulfilled, big.Status())
	assert.Equal(t, 45, ledger.AvailableQuantity(mathISBN))
}

func TestEqualSplit_IndependentPerTitle(t *testing.T) {
	ledger := memory.NewStockLedger(nil)
	require.NoError(t, ledger.Add(mathISBN, 10))
	require.NoError(t, ledger.Add(physicsISBN, 4))

	a := newTestInstitution(t, "INST-A")
	b := newTestInstitution(t, "INST-B")

	mathA, err := a.Submit(mathISBN, 10, entities.Medium)
	require.NoError(t, err)
	physicsA, err := a.Submit(physicsISBN, 4, entities.Medium)
	require.NoError(t, err)
	physicsB, err := b.Submit(physicsISBN, 4, entities.Medium)
	require.NoError(t, err)

	_, err = NewEqualSplit().Run(context.Background(), ledger, []*entities.Institution{a, b})
	require.NoError(t, err)

	// Each title splits among its own requesters only.
	assert.Equal(t, 10, mathA.QuantityFulfilled())
	assert.Equal(t, 2, physicsA.QuantityFulfilled())
	assert.Equal(t, 2, physicsB.QuantityFulfilled())
}
