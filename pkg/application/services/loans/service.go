package loans

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
	"github.com/mkandula/bookdist/pkg/infrastructure/events"
)

// Service manages the loan side of distribution: every successful
// allocation becomes a loan, and returning a loan credits the stock
// ledger. Due-date bookkeeping never feeds back into allocation.
type Service struct {
	ledger repositories.StockLedger
	loans  repositories.LoanRepository
	store  events.Store
	term   time.Duration
	logger *zap.Logger
}

// NewService creates a loan service. A zero term falls back to the
// default loan term; store and logger may be nil.
func NewService(ledger repositories.StockLedger, loans repositories.LoanRepository, store events.Store, term time.Duration, logger *zap.Logger) (*Service, error) {
	if ledger == nil {
		return nil, fmt.Errorf("ledger cannot be nil")
	}
	if loans == nil {
		return nil, fmt.Errorf("loan repository cannot be nil")
	}
	if term <= 0 {
		term = entities.DefaultLoanTerm
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		ledger: ledger,
		loans:  loans,
		store:  store,
		term:   term,
		logger: logger,
	}, nil
}

// Issue records a loan for stock already debited by an allocation pass.
func (s *Service) Issue(isbn, institutionID string, quantity int) (*entities.Loan, error) {
	loan, err := entities.NewLoan(isbn, institutionID, quantity, s.term)
	if err != nil {
		return nil, fmt.Errorf("issue loan: %w", err)
	}
	if err := s.loans.Save(loan); err != nil {
		return nil, fmt.Errorf("issue loan: %w", err)
	}

	s.publish(events.LoanIssuedEvent, loan.ID, events.LoanIssued{
		LoanID:        loan.ID,
		ISBN:          loan.ISBN,
		InstitutionID: loan.InstitutionID,
		Quantity:      loan.Quantity,
		DueDate:       loan.DueDate,
	})

	s.logger.Info("loan issued",
		zap.String("loan_id", loan.ID),
		zap.String("isbn", isbn),
		zap.String("institution_id", institutionID),
		zap.Int("quantity", quantity))
	return loan, nil
}

// Return marks a loan returned and credits the stock back to the ledger.
// A loan can only be returned once.
func (s *Service) Return(loanID string) error {
	loan, err := s.loans.Get(loanID)
	if err != nil {
		return fmt.Errorf("return loan: %w", err)
	}
	if err := loan.MarkReturned(); err != nil {
		return fmt.Errorf("return loan: %w", err)
	}
	if err := s.ledger.Credit(loan.ISBN, loan.Quantity); err != nil {
		return fmt.Errorf("return loan %s: credit ledger: %w", loanID, err)
	}

	s.publish(events.LoanReturnedEvent, loan.ID, events.LoanReturned{
		LoanID: loan.ID,
		ISBN:   loan.ISBN,
	})

	s.logger.Info("loan returned",
		zap.String("loan_id", loan.ID),
		zap.String("isbn", loan.ISBN),
		zap.Int("quantity", loan.Quantity))
	return nil
}

// Overdue returns all unreturned loans past their due date.
func (s *Service) Overdue(now time.Time) []*entities.Loan {
	var overdue []*entities.Loan
	for _, loan := range s.loans.List() {
		if loan.Overdue(now) {
			overdue = append(overdue, loan)
		}
	}
	return overdue
}

// NotifyOverdue sends one notification per overdue loan.
func (s *Service) NotifyOverdue(now time.Time, notifier repositories.Notifier) int {
	if notifier == nil {
		return 0
	}

	overdue := s.Overdue(now)
	for _, loan := range overdue {
		notifier.Notify(loan.InstitutionID,
			fmt.Sprintf("Loan %s for %s is overdue by %d days", loan.ID, loan.ISBN, loan.DaysOverdue(now)))
	}
	return len(overdue)
}

func (s *Service) publish(eventType, streamID string, payload interface{}) {
	if s.store == nil {
		return
	}
	if err := s.store.Append(streamID, events.New(eventType, streamID, payload)); err != nil {
		s.logger.Warn("event append failed", zap.String("event_type", eventType), zap.Error(err))
	}
}
