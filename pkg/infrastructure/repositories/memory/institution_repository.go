package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

// InstitutionRepository provides in-memory institution registration
type InstitutionRepository struct {
	mu           sync.RWMutex
	institutions map[string]*entities.Institution
}

// NewInstitutionRepository creates a new in-memory institution repository
func NewInstitutionRepository() *InstitutionRepository {
	return &InstitutionRepository{
		institutions: make(map[string]*entities.Institution),
	}
}

// Verify interface compliance
var _ repositories.InstitutionRepository = (*InstitutionRepository)(nil)

// Register adds an institution to the registry. Registering an already
// known ID fails.
func (r *InstitutionRepository) Register(institution *entities.Institution) error {
	if institution == nil {
		return fmt.Errorf("institution cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.institutions[institution.ID]; exists {
		return fmt.Errorf("institution %s already registered", institution.ID)
	}
	r.institutions[institution.ID] = institution
	return nil
}

// Get returns the institution with the given ID.
func (r *InstitutionRepository) Get(id string) (*entities.Institution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	institution, exists := r.institutions[id]
	if !exists {
		return nil, fmt.Errorf("institution %q: %w", id, repositories.ErrNotFound)
	}
	return institution, nil
}

// List returns all registered institutions ordered by ID, so pass input
// order is deterministic.
func (r *InstitutionRepository) List() []*entities.Institution {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*entities.Institution, 0, len(r.institutions))
	for _, institution := range r.institutions {
		list = append(list, institution)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Count returns the number of registered institutions.
func (r *InstitutionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.institutions)
}
