package rain

type EventType int

const (
	EventExplosion EventType = iota
	EventSuspendChanged
	EventThemeChanged
)

type Event struct {
	Type EventType
	X, Y float64
	Size float64 // explosion size factor
	On   bool    // suspend state for EventSuspendChanged
	Idx  int     // theme index for EventThemeChanged
}

type EventHandler func(Event)

// EventBus decouples the simulation from side-effect listeners (audio,
// logging). Handlers run synchronously on the emitting goroutine.
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
	if eb == nil {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
