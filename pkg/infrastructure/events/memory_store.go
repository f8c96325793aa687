package events

import (
	"sync"

	"go.uber.org/zap"
)

// InMemoryStore keeps all events in process memory. Handler dispatch is
// synchronous: Append returns after every subscribed handler has run, so
// a pass observes its own notifications. Handler errors are logged and
// never fail the append.
type InMemoryStore struct {
	mu          sync.RWMutex
	streams     map[string][]Event
	allEvents   []Event
	subscribers map[string][]Handler
	logger      *zap.Logger
}

// NewInMemoryStore creates an empty event store. A nil logger disables logging.
func NewInMemoryStore(logger *zap.Logger) *InMemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]Handler),
		logger:      logger,
	}
}

// Verify interface compliance
var _ Store = (*InMemoryStore)(nil)

// Append stores the event at the tail of its stream, assigning the next
// per-stream version, then dispatches it to subscribed handlers.
func (s *InMemoryStore) Append(streamID string, event Event) error {
	s.mu.Lock()

	versioned := baseEvent{
		eventType: event.Type(),
		stream:    streamID,
		data:      event.Data(),
		time:      event.Timestamp(),
		version:   len(s.streams[streamID]) + 1,
	}
	s.streams[streamID] = append(s.streams[streamID], versioned)
	s.allEvents = append(s.allEvents, versioned)

	handlers := s.subscribers[versioned.eventType]
	s.mu.Unlock()

	for _, handler := range handlers {
		if !handler.CanHandle(versioned.eventType) {
			continue
		}
		if err := handler.Handle(versioned); err != nil {
			s.logger.Warn("event handler failed",
				zap.String("event_type", versioned.eventType),
				zap.String("stream", streamID),
				zap.Error(err))
		}
	}
	return nil
}

// Stream returns the events of one stream starting at fromVersion (1-based).
func (s *InMemoryStore) Stream(streamID string, fromVersion int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	if fromVersion < 1 {
		fromVersion = 1
	}
	if fromVersion > len(stream) {
		return nil
	}

	out := make([]Event, len(stream)-fromVersion+1)
	copy(out, stream[fromVersion-1:])
	return out
}

// All returns every stored event in append order starting at fromPosition (0-based).
func (s *InMemoryStore) All(fromPosition int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if fromPosition < 0 {
		fromPosition = 0
	}
	if fromPosition >= len(s.allEvents) {
		return nil
	}

	out := make([]Event, len(s.allEvents)-fromPosition)
	copy(out, s.allEvents[fromPosition:])
	return out
}

// Subscribe registers a handler for the given event types.
func (s *InMemoryStore) Subscribe(eventTypes []string, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}
}
