// Package reporting renders the pipeline's daily text artifacts: per-agent
// debug reports, the published betting card, the president's report, and
// the rolled-up daily report. Adapted from the teacher's synchronous
// in-process event bus (internal/events/bus.go) — here the event types
// name pipeline stages instead of market/order events. The coordinator
// publishes a stage event after each agent, but no subscriber is
// registered; the only per-agent report written is the Auditor's, which
// the coordinator writes directly.
package reporting

import "sync"

type StageType string

const (
	StageResearchComplete  StageType = "research_complete"
	StageModelComplete     StageType = "model_complete"
	StagePickerComplete    StageType = "picker_complete"
	StagePresidentComplete StageType = "president_complete"
	StageAuditorComplete   StageType = "auditor_complete"
)

// StageEvent is the envelope carried across the bus. Payload is stage
// specific; writers type-assert the shape they expect.
type StageEvent struct {
	Type    StageType
	Date    string
	Payload any
}

type Handler func(StageEvent) error

// Bus is a synchronous in-process event bus: subscribers run on the
// publisher's goroutine, in registration order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[StageType][]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[StageType][]Handler)}
}

func (b *Bus) Subscribe(t StageType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

func (b *Bus) Publish(e StageEvent) {
	b.mu.RLock()
	handlers := b.handlers[e.Type]
	b.mu.RUnlock()

	for _, h := range handlers {
		_ = h(e) // one failing report writer shouldn't block the others
	}
}
