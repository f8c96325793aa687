package repositories

import "github.com/mkandula/bookdist/pkg/domain/entities"

// InstitutionRepository is the registry of requesters known to the
// distribution coordinator.
type InstitutionRepository interface {
	Register(institution *entities.Institution) error
	Get(id string) (*entities.Institution, error)
	List() []*entities.Institution
	Count() int
}
