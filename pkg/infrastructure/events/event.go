package events

import "time"

// Event is one immutable entry in a distribution event stream.
type Event interface {
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

// Handler consumes events it has subscribed to.
type Handler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// Store is an append-only event log partitioned into streams.
type Store interface {
	Append(streamID string, event Event) error
	Stream(streamID string, fromVersion int) []Event
	All(fromPosition int) []Event
	Subscribe(eventTypes []string, handler Handler)
}

type baseEvent struct {
	eventType string
	stream    string
	data      interface{}
	time      time.Time
	version   int
}

func (e baseEvent) Type() string         { return e.eventType }
func (e baseEvent) StreamID() string     { return e.stream }
func (e baseEvent) Data() interface{}    { return e.data }
func (e baseEvent) Timestamp() time.Time { return e.time }
func (e baseEvent) Version() int         { return e.version }

// New creates an event ready for appending. The store assigns the
// per-stream version on append.
func New(eventType, streamID string, data interface{}) Event {
	return baseEvent{
		eventType: eventType,
		stream:    streamID,
		data:      data,
		time:      time.Now(),
		version:   1,
	}
}
