package allocation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mkandula/bookdist/pkg/domain/entities"
	"github.com/mkandula/bookdist/pkg/domain/repositories"
	"github.com/mkandula/bookdist/pkg/infrastructure/events"
	"github.com/mkandula/bookdist/pkg/infrastructure/metrics"
)

// LoanIssuer issues a loan for every successful allocation. Implemented
// by the loans service; the coordinator only needs this one operation.
type LoanIssuer interface {
	Issue(isbn, institutionID string, quantity int) (*entities.Loan, error)
}

// PassResult summarizes one completed allocation pass.
type PassResult struct {
	Strategy       string
	Moves          int
	AllocatedUnits int
	DebitFailures  int
	Skipped        int
	NewlyFulfilled int
	Duration       time.Duration
}

// Coordinator orchestrates allocation passes: it snapshots the registered
// institutions, invokes the active strategy, issues loans for committed
// moves, and notifies institutions whose requests became Fulfilled.
// Passes are serialized by the coordinator's mutex, so at most one pass
// runs at a time; strategy swaps are also serialized against passes and
// never affect one already in flight.
type Coordinator struct {
	mu           sync.Mutex
	strategy     Strategy
	ledger       repositories.StockLedger
	institutions repositories.InstitutionRepository
	waitlist     *Waitlist

	notifier repositories.Notifier
	loans    LoanIssuer
	store    events.Store
	metrics  *metrics.Registry
	logger   *zap.Logger
}

// CoordinatorOption configures optional collaborators.
type CoordinatorOption func(*Coordinator)

// WithNotifier sets the post-pass notification target.
func WithNotifier(n repositories.Notifier) CoordinatorOption {
	return func(c *Coordinator) { c.notifier = n }
}

// WithLoanIssuer sets the collaborator that issues loans per allocation.
func WithLoanIssuer(l LoanIssuer) CoordinatorOption {
	return func(c *Coordinator) { c.loans = l }
}

// WithEventStore sets the event log for distribution lifecycle events.
func WithEventStore(s events.Store) CoordinatorOption {
	return func(c *Coordinator) { c.store = s }
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metrics.Registry) CoordinatorOption {
	return func(c *Coordinator) { c.metrics = m }
}

// WithLogger sets the coordinator's logger.
func WithLogger(l *zap.Logger) CoordinatorOption {
	return func(c *Coordinator) { c.logger = l }
}

// NewCoordinator creates a coordinator using the given strategy.
func NewCoordinator(
	strategy Strategy,
	ledger repositories.StockLedger,
	institutions repositories.InstitutionRepository,
	opts ...CoordinatorOption,
) (*Coordinator, error) {
	if strategy == nil {
		return nil, fmt.Errorf("strategy cannot be nil")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger cannot be nil")
	}
	if institutions == nil {
		return nil, fmt.Errorf("institution repository cannot be nil")
	}

	c := &Coordinator{
		strategy:     strategy,
		ledger:       ledger,
		institutions: institutions,
		waitlist:     NewWaitlist(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetStrategy swaps the active strategy between passes.
func (c *Coordinator) SetStrategy(strategy Strategy) error {
	if strategy == nil {
		return fmt.Errorf("strategy cannot be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.strategy = strategy

	c.logger.Info("strategy changed", zap.String("strategy", strategy.Name()))
	return nil
}

// StrategyName returns the name of the currently active strategy.
func (c *Coordinator) StrategyName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.strategy.Name()
}

// Waitlist exposes the coordinator's waiting list for reporting.
func (c *Coordinator) Waitlist() *Waitlist {
	return c.waitlist
}

// SubmitRequest creates a request for a registered institution. When the
// requested quantity exceeds current availability the institution is also
// queued on the waitlist for that title.
func (c *Coordinator) SubmitRequest(institutionID, isbn string, quantity int, priority entities.Priority) (*entities.AllocationRequest, error) {
	institution, err := c.institutions.Get(institutionID)
	if err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}

	req, err := institution.Submit(isbn, quantity, priority)
	if err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}

	if c.ledger.AvailableQuantity(isbn) < quantity {
		c.waitlist.Add(isbn, institutionID, quantity, priority)
		if c.metrics != nil {
			c.metrics.WaitlistDepth.Set(float64(c.waitlist.Depth()))
		}
	}

	c.publish(events.RequestSubmittedEvent, isbn, events.RequestSubmitted{
		RequestID:     req.ID,
		InstitutionID: institutionID,
		ISBN:          isbn,
		Quantity:      quantity,
		Priority:      priority,
	})

	c.logger.Info("request submitted",
		zap.String("institution_id", institutionID),
		zap.String("isbn", isbn),
		zap.Int("quantity", quantity),
		zap.Stringer("priority", priority))
	return req, nil
}

// RunPass executes one allocation pass with the active strategy.
// Concurrent callers block until the in-flight pass completes.
func (c *Coordinator) RunPass(ctx context.Context) (PassResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	started := time.Now()
	institutions := c.institutions.List()
	fulfilledBefore := fulfilledRequestIDs(institutions)

	c.logger.Info("allocation pass starting",
		zap.String("strategy", c.strategy.Name()),
		zap.Int("institutions", len(institutions)))

	stats, err := c.strategy.Run(ctx, c.ledger, institutions)
	if err != nil {
		return PassResult{}, fmt.Errorf("allocation pass (%s): %w", c.strategy.Name(), err)
	}

	for _, move := range stats.Moves {
		c.publish(events.StockAllocatedEvent, move.ISBN, events.StockAllocated{
			ISBN:          move.ISBN,
			InstitutionID: move.InstitutionID,
			RequestID:     move.RequestID,
			Quantity:      move.Quantity,
		})

		if c.loans == nil {
			continue
		}
		if _, issueErr := c.loans.Issue(move.ISBN, move.InstitutionID, move.Quantity); issueErr != nil {
			c.logger.Warn("loan issue failed",
				zap.String("isbn", move.ISBN),
				zap.String("institution_id", move.InstitutionID),
				zap.Error(issueErr))
		}
	}

	newlyFulfilled := c.notifyFulfilled(institutions, fulfilledBefore)

	result := PassResult{
		Strategy:       c.strategy.Name(),
		Moves:          len(stats.Moves),
		AllocatedUnits: stats.AllocatedUnits,
		DebitFailures:  stats.DebitFailures,
		Skipped:        stats.Skipped,
		NewlyFulfilled: newlyFulfilled,
		Duration:       time.Since(started),
	}

	c.publish(events.PassCompletedEvent, "passes", events.PassCompleted{
		Strategy:       result.Strategy,
		Moves:          result.Moves,
		AllocatedUnits: result.AllocatedUnits,
		Duration:       result.Duration,
	})
	c.record(result)

	c.logger.Info("allocation pass completed",
		zap.String("strategy", result.Strategy),
		zap.Int("moves", result.Moves),
		zap.Int("allocated_units", result.AllocatedUnits),
		zap.Int("skipped", result.Skipped),
		zap.Int("newly_fulfilled", result.NewlyFulfilled),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// notifyFulfilled notifies institutions owning requests that transitioned
// to Fulfilled during this pass and clears their waitlist entries.
func (c *Coordinator) notifyFulfilled(institutions []*entities.Institution, fulfilledBefore map[string]bool) int {
	newly := 0
	for _, institution := range institutions {
		for _, req := range institution.Requests() {
			if req.Status() != entities.Fulfilled || fulfilledBefore[req.ID] {
				continue
			}
			newly++

			c.waitlist.Remove(req.ISBN, institution.ID)
			c.publish(events.RequestFulfilledEvent, req.ISBN, events.RequestFulfilled{
				RequestID:     req.ID,
				InstitutionID: institution.ID,
				ISBN:          req.ISBN,
				Quantity:      req.QuantityFulfilled(),
			})
			if c.notifier != nil {
				c.notifier.Notify(institution.ID,
					fmt.Sprintf("Request %s fulfilled: %d units of %s", req.ID, req.QuantityFulfilled(), req.ISBN))
			}
		}
	}

	if c.metrics != nil {
		c.metrics.WaitlistDepth.Set(float64(c.waitlist.Depth()))
	}
	return newly
}

func (c *Coordinator) publish(eventType, streamID string, payload interface{}) {
	if c.store == nil {
		return
	}
	if err := c.store.Append(streamID, events.New(eventType, streamID, payload)); err != nil {
		c.logger.Warn("event append failed", zap.String("event_type", eventType), zap.Error(err))
	}
}

func (c *Coordinator) record(result PassResult) {
	if c.metrics == nil {
		return
	}
	c.metrics.PassesTotal.Inc()
	c.metrics.AllocationsTotal.Add(float64(result.Moves))
	c.metrics.AllocatedUnits.Add(float64(result.AllocatedUnits))
	c.metrics.DebitFailures.Add(float64(result.DebitFailures))
	c.metrics.PassDurationSec.Observe(result.Duration.Seconds())
}

func fulfilledRequestIDs(institutions []*entities.Institution) map[string]bool {
	ids := make(map[string]bool)
	for _, institution := range institutions {
		for _, req := range institution.Requests() {
			if req.Status() == entities.Fulfilled {
				ids[req.ID] = true
			}
		}
	}
	return ids
}
