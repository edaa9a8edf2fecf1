package notifysvc

import (
	"sync"

	"github.com/jmog/academy/core"
)

type SentEvent struct {
	Event    core.Event
	Endpoint string
}

// NotifierMock records send attempts synchronously for tests. Events fired
// with an empty endpoint are dropped, matching the production no-op.
type NotifierMock struct {
	mu   sync.Mutex
	sent []SentEvent
}

var _ core.Notifier = (*NotifierMock)(nil)

func NewNotifierMock() *NotifierMock {
	return &NotifierMock{}
}

func (m *NotifierMock) Notify(evt core.Event, endpoint string) {
	if endpoint == "" {
		return
	}
	m.mu.Lock()
	m.sent = append(m.sent, SentEvent{Event: evt, Endpoint: endpoint})
	m.mu.Unlock()
}

func (m *NotifierMock) Sent() []SentEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentEvent, len(m.sent))
	copy(out, m.sent)
	return out
}

func (m *NotifierMock) Reset() {
	m.mu.Lock()
	m.sent = nil
	m.mu.Unlock()
}
