package reconciler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/retrogameshop/storefront-platform/internal/metrics"
	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/pkg/payment"
)

// Reconciler answers "did my payment succeed" by polling the payment
// provider instead of trusting the client's optimistic state. One watcher
// runs per order; watchers stop at the first terminal status and on
// teardown of the owning context.
type Reconciler struct {
	provider payment.Provider
	interval time.Duration

	mu       sync.Mutex
	watchers map[string]*Watcher
}

func New(provider payment.Provider, interval time.Duration) *Reconciler {
	return &Reconciler{
		provider: provider,
		interval: interval,
		watchers: make(map[string]*Watcher),
	}
}

// Watcher tracks a single order's payment status. Status() is safe for
// concurrent reads while the poll loop runs.
type Watcher struct {
	orderNumber string

	mu     sync.RWMutex
	status models.CheckoutStatus

	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

func (w *Watcher) Status() models.CheckoutStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.status
}

// Stop cancels the poll loop. Safe to call more than once.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
}

// Done closes once the poll loop has exited.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

func (w *Watcher) setStatus(s models.CheckoutStatus) {
	w.mu.Lock()
	w.status = s
	w.mu.Unlock()
}

// Watch starts (or returns the existing) watcher for an order. An empty
// order reference is a local fault: the watcher reports the distinct "error"
// state immediately and never polls, so it is never mistaken for a
// provider-reported payment failure. onSuccess fires exactly once, on the
// first terminal-success status observed.
func (r *Reconciler) Watch(ctx context.Context, orderNumber string, onSuccess func()) *Watcher {

	r.mu.Lock()
	defer r.mu.Unlock()

	if orderNumber == "" {
		w := &Watcher{
			status: models.CheckoutStatusError,
			done:   make(chan struct{}),
		}
		close(w.done)

		return w
	}

	if w, ok := r.watchers[orderNumber]; ok {
		return w
	}

	pollCtx, cancel := context.WithCancel(ctx)

	w := &Watcher{
		orderNumber: orderNumber,
		status:      models.CheckoutStatusLoading,
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	r.watchers[orderNumber] = w

	go r.run(pollCtx, w, onSuccess)

	return w
}

func (r *Reconciler) run(ctx context.Context, w *Watcher, onSuccess func()) {

	defer close(w.done)

	// No backoff: payment confirmation resolves within seconds, so a fixed
	// short interval is enough.
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	if done := r.check(ctx, w, onSuccess); done {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if done := r.check(ctx, w, onSuccess); done {
				return
			}
		}
	}
}

// check performs one status query and reports whether polling should stop.
// Transport failures and not-yet-found payments read as pending: a network
// hiccup must never be surfaced as a payment failure.
func (r *Reconciler) check(ctx context.Context, w *Watcher, onSuccess func()) bool {

	status, err := r.provider.GetPaymentStatus(ctx, w.orderNumber)
	if err != nil {

		if err != payment.ErrPaymentNotFound && ctx.Err() == nil {
			slog.Warn("Payment status check failed, retrying",
				slog.String("order", w.orderNumber), slog.Any("error", err))
		}

		status = models.CheckoutStatusPending
	}

	w.setStatus(status)
	metrics.RecordStatusPoll(string(status))

	if status.IsSuccess() {
		w.once.Do(onSuccess)
	}

	return status.IsTerminal()
}

// Stop cancels every active watcher; used on server shutdown.
func (r *Reconciler) Stop() {

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, w := range r.watchers {
		w.Stop()
	}
}

// Message returns the user-facing copy for a status.
func Message(status models.CheckoutStatus) string {
	switch status {
	case models.CheckoutStatusLoading:
		return "Even geduld, we controleren je betaling."
	case models.CheckoutStatusPaid:
		return "Je bestelling is ontvangen en betaald. Je ontvangt een bevestigingsmail."
	case models.CheckoutStatusAuthorized:
		return "Je bestelling wordt verwerkt. Je ontvangt een bevestigingsmail."
	case models.CheckoutStatusPending:
		return "Je betaling wordt nog verwerkt. Dit kan even duren."
	case models.CheckoutStatusCanceled:
		return "Je betaling is geannuleerd. Je kunt opnieuw bestellen."
	case models.CheckoutStatusExpired:
		return "De betalingslink is verlopen. Probeer het opnieuw."
	case models.CheckoutStatusFailed:
		return "Er ging iets mis met je betaling. Probeer het opnieuw of kies een andere betaalmethode."
	}

	return "Neem contact met ons op als dit probleem aanhoudt."
}
