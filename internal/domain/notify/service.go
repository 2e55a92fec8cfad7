package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Notice struct {
	ID       string    `json:"id"`
	Kind     Kind      `json:"kind"`
	Message  string    `json:"message"`
	IssuedAt time.Time `json:"issuedAt"`
}

// Bus holds at most one active notice. Emitting replaces the current
// one; a notice also lapses on its own once the TTL passes.
type Bus struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	active *Notice
}

func New(ttl time.Duration) *Bus {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Bus{ttl: ttl, now: time.Now}
}

// Emit publishes a notice, replacing any prior unexpired one. Safe to
// call on a nil bus so services can run without a wired bus in tests.
func (b *Bus) Emit(kind Kind, message string) Notice {
	if b == nil {
		return Notice{Kind: kind, Message: message}
	}
	notice := Notice{
		ID:       uuid.NewString(),
		Kind:     kind,
		Message:  message,
		IssuedAt: b.now().UTC(),
	}
	b.mu.Lock()
	b.active = &notice
	b.mu.Unlock()
	return notice
}

// Active returns the current notice, expiring it lazily.
func (b *Bus) Active() (Notice, bool) {
	if b == nil {
		return Notice{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == nil {
		return Notice{}, false
	}
	if b.now().Sub(b.active.IssuedAt) >= b.ttl {
		b.active = nil
		return Notice{}, false
	}
	return *b.active, true
}

// Dismiss clears the active notice before its TTL lapses.
func (b *Bus) Dismiss() {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.active = nil
	b.mu.Unlock()
}
