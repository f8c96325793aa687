package entities

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Priority ranks an allocation request; higher values win allocation first
type Priority int

const (
	Low Priority = iota + 1
	Medium
	High
	Critical
)

// String method for Priority enum
func (p Priority) String() string {
	switch p {
	case Low:
		return "Low"
	case Medium:
		return "Medium"
	case High:
		return "High"
	case Critical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// ParsePriority converts a priority name into a Priority value
func ParsePriority(s string) (Priority, error) {
	for p := Low; p <= Critical; p++ {
		if strings.EqualFold(p.String(), s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown priority: %q", s)
}

// RequestStatus represents the lifecycle state of an allocation request
type RequestStatus int

const (
	Pending RequestStatus = iota
	Approved
	PartiallyFulfilled
	Fulfilled
	Rejected
)

// String method for RequestStatus enum
func (s RequestStatus) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Approved:
		return "Approved"
	case PartiallyFulfilled:
		return "Partially Fulfilled"
	case Fulfilled:
		return "Fulfilled"
	case Rejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// AllocationRequest tracks requested vs. fulfilled stock for one book title.
// It is created by an institution's submission and mutated only by the
// allocation engine through FulfillPartial; fulfilled quantity never
// decreases and status is always derived from (requested, fulfilled).
type AllocationRequest struct {
	ID                string
	ISBN              string
	QuantityRequested int
	Priority          Priority
	SubmittedAt       time.Time
	RequestedBy       string

	mu                sync.Mutex
	quantityFulfilled int
	status            RequestStatus
}

// NewAllocationRequest creates a validated, Pending request
func NewAllocationRequest(isbn string, quantity int, priority Priority, requestedBy string) (*AllocationRequest, error) {
	if !ValidISBN(isbn) {
		return nil, fmt.Errorf("invalid ISBN format: %q", isbn)
	}
	if !ValidQuantity(quantity) {
		return nil, fmt.Errorf("quantity must be between 1 and %d, got %d", MaxQuantity-1, quantity)
	}
	if priority < Low || priority > Critical {
		return nil, fmt.Errorf("priority out of range: %d", priority)
	}

	return &AllocationRequest{
		ID:                uuid.NewString(),
		ISBN:              isbn,
		QuantityRequested: quantity,
		Priority:          priority,
		SubmittedAt:       time.Now(),
		RequestedBy:       requestedBy,
		status:            Pending,
	}, nil
}

// QuantityFulfilled returns the total quantity allocated so far.
func (r *AllocationRequest) QuantityFulfilled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quantityFulfilled
}

// Remaining returns the quantity still needed to satisfy the request.
func (r *AllocationRequest) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.QuantityRequested - r.quantityFulfilled
}

// Status returns the current lifecycle state.
func (r *AllocationRequest) Status() RequestStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// FulfillPartial credits qty against the request and recomputes status.
// Fulfilled quantity is clamped at QuantityRequested and never decreases;
// qty=0 is a no-op. Negative quantities are ignored to preserve monotonicity.
func (r *AllocationRequest) FulfillPartial(qty int) {
	if qty <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.quantityFulfilled += qty
	if r.quantityFulfilled > r.QuantityRequested {
		r.quantityFulfilled = r.QuantityRequested
	}

	switch {
	case r.quantityFulfilled >= r.QuantityRequested:
		r.status = Fulfilled
	case r.quantityFulfilled > 0:
		r.status = PartiallyFulfilled
	}
}

// Approve marks a Pending request as administratively approved.
// Approval is a review-workflow state; strategies never set it.
func (r *AllocationRequest) Approve() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != Pending {
		return fmt.Errorf("cannot approve request in status %s", r.status)
	}
	r.status = Approved
	return nil
}

// Reject marks a request as administratively rejected. Rejection is
// terminal and only valid before any stock has been allocated.
func (r *AllocationRequest) Reject() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.quantityFulfilled > 0 {
		return fmt.Errorf("cannot reject request with %d units already allocated", r.quantityFulfilled)
	}
	if r.status == Rejected {
		return nil
	}
	if r.status != Pending && r.status != Approved {
		return fmt.Errorf("cannot reject request in status %s", r.status)
	}
	r.status = Rejected
	return nil
}

// Allocatable reports whether the request should be considered by a
// strategy: Pending or PartiallyFulfilled with remaining need.
func (r *AllocationRequest) Allocatable() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != Pending && r.status != PartiallyFulfilled {
		return false
	}
	return r.quantityFulfilled < r.QuantityRequested
}
