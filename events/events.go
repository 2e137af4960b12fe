package events

import (
	"fmt"
)

type Event struct {
	Id EventId
}

func (e Event) String() string {
	return fmt.Sprintf("%v", e.Id)
}

type EventId string

// event constants are declared here for all workers to ensure uniqueness of constant values
const (
	NOOP EventId = "NOOP"

	// architecture resolution related
	ARCH_RESOLVED    EventId = "ARCH_RESOLVED"
	ARCH_UNAVAILABLE EventId = "ARCH_UNAVAILABLE"
)

type Message interface {
	Event() Event
	ShortString() string
}

// This event indicates that the supported architecture list for this machine
// has been computed and the query API can answer with real data.
type ArchResolvedMessage struct {
	event         Event
	defaultArch   string
	supportedArch []string
}

func (e ArchResolvedMessage) String() string {
	return fmt.Sprintf("event: %v, default: %v, supported: %v", e.event, e.defaultArch, e.supportedArch)
}

func (e ArchResolvedMessage) ShortString() string {
	return e.String()
}

func (e *ArchResolvedMessage) Event() Event {
	return e.event
}

func (e *ArchResolvedMessage) DefaultArch() string {
	return e.defaultArch
}

func (e *ArchResolvedMessage) SupportedArch() []string {
	return e.supportedArch
}

func NewArchResolvedMessage(id EventId, defaultArch string, supportedArch []string) *ArchResolvedMessage {

	return &ArchResolvedMessage{
		event: Event{
			Id: id,
		},
		defaultArch:   defaultArch,
		supportedArch: supportedArch,
	}
}

// This event indicates that the compatibility table could not be read and the
// resolver is running with empty state.
type ArchUnavailableMessage struct {
	event  Event
	reason string
}

func (e ArchUnavailableMessage) String() string {
	return fmt.Sprintf("event: %v, reason: %v", e.event, e.reason)
}

func (e ArchUnavailableMessage) ShortString() string {
	return e.String()
}

func (e *ArchUnavailableMessage) Event() Event {
	return e.event
}

func (e *ArchUnavailableMessage) Reason() string {
	return e.reason
}

func NewArchUnavailableMessage(id EventId, reason string) *ArchUnavailableMessage {

	return &ArchUnavailableMessage{
		event: Event{
			Id: id,
		},
		reason: reason,
	}
}
