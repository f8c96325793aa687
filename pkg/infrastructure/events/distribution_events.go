package events

import (
	"time"

	"github.com/mkandula/bookdist/pkg/domain/entities"
)

const (
	StockAddedEvent     = "stock.added"
	StockAllocatedEvent = "stock.allocated"
	StockReturnedEvent  = "stock.returned"

	RequestSubmittedEvent = "request.submitted"
	RequestFulfilledEvent = "request.fulfilled"

	PassCompletedEvent = "pass.completed"

	LoanIssuedEvent   = "loan.issued"
	LoanReturnedEvent = "loan.returned"
)

type StockAdded struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
}

type StockAllocated struct {
	ISBN          string `json:"isbn"`
	InstitutionID string `json:"institution_id"`
	RequestID     string `json:"request_id"`
	Quantity      int    `json:"quantity"`
}

type StockReturned struct {
	ISBN     string `json:"isbn"`
	Quantity int    `json:"quantity"`
	LoanID   string `json:"loan_id,omitempty"`
}

type RequestSubmitted struct {
	RequestID     string            `json:"request_id"`
	InstitutionID string            `json:"institution_id"`
	ISBN          string            `json:"isbn"`
	Quantity      int               `json:"quantity"`
	Priority      entities.Priority `json:"priority"`
}

type RequestFulfilled struct {
	RequestID     string `json:"request_id"`
	InstitutionID string `json:"institution_id"`
	ISBN          string `json:"isbn"`
	Quantity      int    `json:"quantity"`
}

type PassCompleted struct {
	Strategy       string        `json:"strategy"`
	Moves          int           `json:"moves"`
	AllocatedUnits int           `json:"allocated_units"`
	Duration       time.Duration `json:"duration"`
}

type LoanIssued struct {
	LoanID        string    `json:"loan_id"`
	ISBN          string    `json:"isbn"`
	InstitutionID string    `json:"institution_id"`
	Quantity      int       `json:"quantity"`
	DueDate       time.Time `json:"due_date"`
}

type LoanReturned struct {
	LoanID string `json:"loan_id"`
	ISBN   string `json:"isbn"`
}
