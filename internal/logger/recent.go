package logger

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const recentCapacity = 200

// Record is a single retained log entry.
type Record struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// recentHook keeps the last N log records in a ring buffer.
type recentHook struct {
	mu   sync.Mutex
	buf  []Record
	next int
	size int
}

func newRecentHook(capacity int) *recentHook {
	return &recentHook{buf: make([]Record, capacity)}
}

// Run implements zerolog.Hook.
func (h *recentHook) Run(_ *zerolog.Event, level zerolog.Level, message string) {
	if level == zerolog.NoLevel || message == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.next] = Record{Time: time.Now(), Level: level.String(), Message: message}
	h.next = (h.next + 1) % len(h.buf)
	if h.size < len(h.buf) {
		h.size++
	}
}

// snapshot returns retained records, newest first.
func (h *recentHook) snapshot() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Record, 0, h.size)
	for i := 1; i <= h.size; i++ {
		idx := (h.next - i + len(h.buf)) % len(h.buf)
		out = append(out, h.buf[idx])
	}
	return out
}

func (h *recentHook) clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next = 0
	h.size = 0
}
