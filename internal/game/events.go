package game

import (
	"raft/internal/config"
	"raft/internal/scene"
)

type EventType int

const (
	EventModeChanged EventType = iota
	EventConfigReloaded
)

type Event struct {
	Type       EventType
	Transition scene.Transition // EventModeChanged
	Config     config.Config    // EventConfigReloaded
}

type EventHandler func(Event)

// EventBus fans frame-loop events out to the window, audio and logging.
// Handlers run synchronously on the frame goroutine.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
