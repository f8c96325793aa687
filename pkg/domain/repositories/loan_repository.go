package repositories

import "github.com/mkandula/bookdist/pkg/domain/entities"

// LoanRepository stores loans issued against successful allocations.
type LoanRepository interface {
	Save(loan *entities.Loan) error
	Get(id string) (*entities.Loan, error)
	List() []*entities.Loan
	ByInstitution(institutionID string) []*entities.Loan
}
