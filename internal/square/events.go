package square

import "github.com/samber/lo"

type EventType int

const (
	EventStateChanged EventType = iota
	EventDragStart
	EventDragMove
	EventDragEnd
)

type Event struct {
	Type  EventType
	X, Y  float32 // square position after the event
	State State   // lifecycle state after the event
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the emitting goroutine.
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

// SubscribeAll registers fn for each of the given types.
func (eb *EventBus) SubscribeAll(fn EventHandler, types ...EventType) {
	for _, t := range lo.Uniq(types) {
		eb.Subscribe(t, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}

func (t EventType) String() string {
	switch t {
	case EventStateChanged:
		return "state-changed"
	case EventDragStart:
		return "drag-start"
	case EventDragMove:
		return "drag-move"
	case EventDragEnd:
		return "drag-end"
	default:
		return "unknown"
	}
}
