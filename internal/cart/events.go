package cart

import (
	"log/slog"
	"sync"
)

// Event is broadcast after every successful AddItem. It exists so unrelated
// UI (the combo counter, toasts) can react without the cart knowing about
// them; delivery is fire-and-forget and not part of the cart's contract.
type Event struct {
	SessionID string
	SKU       string
	Variant   string
	Quantity  int
}

type Subscriber func(Event)

type Notifier struct {
	mu   sync.RWMutex
	subs []Subscriber
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(fn Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.subs = append(n.subs, fn)
}

// Publish invokes every subscriber, isolating the cart from their failures.
func (n *Notifier) Publish(event Event) {
	n.mu.RLock()
	subs := make([]Subscriber, len(n.subs))
	copy(subs, n.subs)
	n.mu.RUnlock()

	for _, fn := range subs {
		safeNotify(fn, event)
	}
}

func safeNotify(fn Subscriber, event Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Cart event subscriber panicked", slog.Any("panic", r))
		}
	}()

	fn(event)
}
