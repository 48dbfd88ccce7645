// Package notify carries user-facing outcome messages from the state
// containers to whatever surface renders them. Stores push notices instead
// of returning display strings; failures that must halt a workflow are
// additionally reported through error returns.
package notify

import "sync"

type Level string

const (
	Success Level = "success"
	Info    Level = "info"
	Warn    Level = "warn"
	Error   Level = "error"
)

type Notice struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

type Sink interface {
	Push(level Level, message string)
}

// Recorder buffers notices until a consumer drains them, typically once per
// request to render flash messages. Also handy in tests.
type Recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Push(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, Notice{Level: level, Message: message})
}

// Drain returns buffered notices and clears the buffer.
func (r *Recorder) Drain() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notices
	r.notices = nil
	return out
}
