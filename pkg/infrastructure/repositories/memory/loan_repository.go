package memory

import (
	"fmt"
	"sync"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
)

// LoanRepository provides in-memory loan storage in issue order
type LoanRepository struct {
	mu    sync.RWMutex
	loans []*entities.Loan
	byID  map[string]*entities.Loan
}

// NewLoanRepository creates a new in-memory loan repository
func NewLoanRepository() *LoanRepository {
	return &LoanRepository{
		byID: make(map[string]*entities.Loan),
	}
}

// Verify interface compliance
var _ repositories.LoanRepository = (*LoanRepository)(nil)

// Save stores a loan. Saving the same loan ID twice fails.
func (r *LoanRepository) Save(loan *entities.Loan) error {
	if loan == nil {
		return fmt.Errorf("loan cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[loan.ID]; exists {
		return fmt.Errorf("loan %s already saved", loan.ID)
	}
	r.loans = append(r.loans, loan)
	r.byID[loan.ID] = loan
	return nil
}

// Get returns the loan with the given ID.
func (r *LoanRepository) Get(id string) (*entities.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loan, exists := r.byID[id]
	if !exists {
		return nil, fmt.Errorf("loan %q: %w", id, repositories.ErrNotFound)
	}
	return loan, nil
}

// List returns all loans in issue order.
func (r *LoanRepository) List() []*entities.Loan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Loan, len(r.loans))
	copy(out, r.loans)
	return out
}

// ByInstitution returns the loans issued to one institution, in issue order.
func (r *LoanRepository) ByInstitution(institutionID string) []*entities.Loan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.Loan
	for _, loan := range r.loans {
		if loan.InstitutionID == institutionID {
			out = append(out, loan)
		}
	}
	return out
}
