package entities

import (
	"fmt"
	"sync"
)

// InstitutionType classifies a registered requester
type InstitutionType int

const (
	PrimarySchool InstitutionType = iota
	SecondarySchool
	HighSchool
	College
	University
	Library
	ResearchCenter
)

// String method for InstitutionType enum
func (t InstitutionType) String() string {
	switch t {
	case PrimarySchool:
		return "Primary School"
	case SecondarySchool:
		return "Secondary School"
	case HighSchool:
		return "High School"
	case College:
		return "College"
	case University:
		return "University"
	case Library:
		return "Library"
	case ResearchCenter:
		return "Research Center"
	default:
		return "Unknown"
	}
}

// Institution is a registered requester. It exclusively owns the
// allocation requests it has submitted and the tally of stock received;
// the allocation engine holds only transient access during a pass.
type Institution struct {
	ID           string
	Name         string
	Type         InstitutionType
	Location     string
	StudentCount int

	mu       sync.Mutex
	requests []*AllocationRequest
	received map[string]int
}

// NewInstitution creates a validated Institution
func NewInstitution(id, name string, institutionType InstitutionType, location string, studentCount int) (*Institution, error) {
	if id == "" {
		return nil, fmt.Errorf("institution id cannot be empty")
	}
	if name == "" {
		return nil, fmt.Errorf("institution name cannot be empty")
	}
	if studentCount < 0 {
		return nil, fmt.Errorf("student count cannot be negative, got %d", studentCount)
	}

	return &Institution{
		ID:           id,
		Name:         name,
		Type:         institutionType,
		Location:     location,
		StudentCount: studentCount,
		received:     make(map[string]int),
	}, nil
}

// Submit creates a new Pending request owned by this institution.
func (i *Institution) Submit(isbn string, quantity int, priority Priority) (*AllocationRequest, error) {
	req, err := NewAllocationRequest(isbn, quantity, priority, i.ID)
	if err != nil {
		return nil, err
	}

	i.mu.Lock()
	i.requests = append(i.requests, req)
	i.mu.Unlock()

	return req, nil
}

// AddRequest appends an externally constructed request, e.g. one coming
// out of a review workflow.
func (i *Institution) AddRequest(req *AllocationRequest) {
	if req == nil {
		return
	}

	i.mu.Lock()
	i.requests = append(i.requests, req)
	i.mu.Unlock()
}

// PendingOrPartial returns the requests a strategy should consider, in
// submission order.
func (i *Institution) PendingOrPartial() []*AllocationRequest {
	i.mu.Lock()
	defer i.mu.Unlock()

	var open []*AllocationRequest
	for _, req := range i.requests {
		if req.Allocatable() {
			open = append(open, req)
		}
	}
	return open
}

// Requests returns a snapshot of all requests in submission order.
func (i *Institution) Requests() []*AllocationRequest {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]*AllocationRequest, len(i.requests))
	copy(out, i.requests)
	return out
}

// Receive credits qty units of a title to the institution's receipt tally.
func (i *Institution) Receive(isbn string, qty int) {
	if qty <= 0 {
		return
	}

	i.mu.Lock()
	i.received[isbn] += qty
	i.mu.Unlock()
}

// ReceivedQuantity returns the total units of a title this institution has received.
func (i *Institution) ReceivedQuantity(isbn string) int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.received[isbn]
}

// TotalReceived returns the total units received across all titles.
func (i *Institution) TotalReceived() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	total := 0
	for _, qty := range i.received {
		total += qty
	}
	return total
}
