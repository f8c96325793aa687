package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkandula/bookdist/pkg/domain/entities"
)

func TestWaitlist_FIFOPerTitle(t *testing.T) {
	w := NewWaitlist()

	w.Add(mathISBN, "INST-A", 100, entities.High)
	w.Add(mathISBN, "INST-B", 50, entities.Critical)
	w.Add(physicsISBN, "INST-C", 10, entities.Low)

	waiting := w.Waiting(mathISBN)
	assert.Len(t, waiting, 2)
	assert.Equal(t, "INST-A", waiting[0].InstitutionID, "enqueue order, not priority order")
	assert.Equal(t, "INST-B", waiting[1].InstitutionID)

	assert.Equal(t, 2, w.Count(mathISBN))
	assert.Equal(t, 1, w.Count(physicsISBN))
	assert.Equal(t, 3, w.Depth())
}

func TestWaitlist_Remove(t *testing.T) {
	w := NewWaitlist()

	w.Add(mathISBN, "INST-A", 100, entities.High)
	w.Add(mathISBN, "INST-B", 50, entities.Medium)
	w.Add(mathISBN, "INST-A", 25, entities.Low)

	w.Remove(mathISBN, "INST-A")

	waiting := w.Waiting(mathISBN)
	assert.Len(t, waiting, 1, "all entries of the institution are dropped")
	assert.Equal(t, "INST-B", waiting[0].InstitutionID)

	// Removing an institution that is not queued is a no-op.
	w.Remove(mathISBN, "INST-X")
	assert.Equal(t, 1, w.Count(mathISBN))

	w.Remove(mathISBN, "INST-B")
	assert.Equal(t, 0, w.Count(mathISBN))
	assert.Equal(t, 0, w.Depth())
}

func TestWaitlist_WaitingReturnsCopy(t *testing.T) {
	w := NewWaitlist()
	w.Add(mathISBN, "INST-A", 100, entities.High)

	waiting := w.Waiting(mathISBN)
	waiting[0].InstitutionID = "MUTATED"

	assert.Equal(t, "INST-A", w.Waiting(mathISBN)[0].InstitutionID)
}
