package notify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mkandula/bookdist/pkg/domain/repositories"
	"github.com/mkandula/bookdist/pkg/infrastructure/events"
)

// LoggerNotifier delivers notifications by writing them to the injected
// logger. It stands in for the out-of-scope delivery channel (mail, SMS).
type LoggerNotifier struct {
	logger *zap.Logger
}

// NewLoggerNotifier creates a notifier backed by the given logger.
func NewLoggerNotifier(logger *zap.Logger) *LoggerNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggerNotifier{logger: logger}
}

// Verify interface compliance
var _ repositories.Notifier = (*LoggerNotifier)(nil)

// Notify logs the message addressed to one institution.
func (n *LoggerNotifier) Notify(institutionID, message string) {
	n.logger.Info("notification",
		zap.String("institution_id", institutionID),
		zap.String("message", message))
}

// FulfillmentSubscriber bridges request-fulfilled events to a Notifier.
// Assemblies that prefer event-driven delivery subscribe this instead of
// handing the coordinator a notifier directly.
type FulfillmentSubscriber struct {
	notifier repositories.Notifier
}

// NewFulfillmentSubscriber creates a subscriber forwarding to notifier.
func NewFulfillmentSubscriber(notifier repositories.Notifier) *FulfillmentSubscriber {
	return &FulfillmentSubscriber{notifier: notifier}
}

// Verify interface compliance
var _ events.Handler = (*FulfillmentSubscriber)(nil)

// CanHandle reports whether the subscriber consumes this event type.
func (s *FulfillmentSubscriber) CanHandle(eventType string) bool {
	return eventType == events.RequestFulfilledEvent
}

// Handle forwards a fulfillment event as a notification.
func (s *FulfillmentSubscriber) Handle(event events.Event) error {
	payload, ok := event.Data().(events.RequestFulfilled)
	if !ok {
		return fmt.Errorf("unexpected payload type %T for %s", event.Data(), event.Type())
	}
	s.notifier.Notify(payload.InstitutionID,
		fmt.Sprintf("Request %s fulfilled: %d units of %s", payload.RequestID, payload.Quantity, payload.ISBN))
	return nil
}
