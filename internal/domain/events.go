package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted        EventType = "SearchStarted"
	EventSearchCompleted      EventType = "SearchCompleted"
	EventSearchFailed         EventType = "SearchFailed"
	EventSearchDiscarded      EventType = "SearchDiscarded"
	EventPlaybackChanged      EventType = "PlaybackChanged"
	EventPlayerCommandSent    EventType = "PlayerCommandSent"
	EventFrameMessageRejected EventType = "FrameMessageRejected"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a request is issued to the search API
type SearchStartedEvent struct {
	Query string
	Token uint64
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when the API answered with status true
type SearchCompletedEvent struct {
	Query    string
	Token    uint64
	Results  int
	Duration time.Duration
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent covers both API-level and transport failures
type SearchFailedEvent struct {
	Query     string
	Token     uint64
	Message   string // message shown to the user
	Transport bool   // true when the request never produced a usable body
	Err       error
	Duration  time.Duration
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchDiscardedEvent is emitted when a superseded response arrives
type SearchDiscardedEvent struct {
	Query string
	Token uint64
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// PlaybackChangedEvent is emitted when a player's local state flips
type PlaybackChangedEvent struct {
	FrameID string
	VideoID string
	Playing bool
}

func (e PlaybackChangedEvent) Type() EventType { return EventPlaybackChanged }

// PlayerCommandSentEvent is emitted for every command posted to a frame
type PlayerCommandSentEvent struct {
	FrameID string
	Func    string
}

func (e PlayerCommandSentEvent) Type() EventType { return EventPlayerCommandSent }

// FrameMessageRejectedEvent is emitted when an inbound frame message is ignored
type FrameMessageRejectedEvent struct {
	FrameID string
	Origin  string
	Reason  string
}

func (e FrameMessageRejectedEvent) Type() EventType { return EventFrameMessageRejected }
