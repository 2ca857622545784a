package cart

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/retrogameshop/storefront-platform/internal/discount"
	"github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/metrics"
	"github.com/retrogameshop/storefront-platform/internal/models"
)

type state struct {
	items    []models.CartItem
	discount *models.AppliedDiscount
}

// Manager is the single source of truth for every in-progress order. The
// in-memory state is authoritative; each mutation is written through to the
// Store, and a write failure is swallowed so the session keeps working from
// memory. Sessions hydrate lazily from persisted state on first access.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*state
	store    Store
	engine   *discount.Engine
	notifier *Notifier
}

func NewManager(store Store, engine *discount.Engine) *Manager {
	return &Manager{
		sessions: make(map[string]*state),
		store:    store,
		engine:   engine,
		notifier: NewNotifier(),
	}
}

// Subscribe registers a fire-and-forget listener for add-to-cart events.
func (m *Manager) Subscribe(fn Subscriber) {
	m.notifier.Subscribe(fn)
}

// AddItem merges into an existing (sku, variant) line or appends a new one.
// Past the quantity cap it is a silent no-op, not an error.
func (m *Manager) AddItem(ctx context.Context, sessionID string, product models.Product, variant string) (models.CartView, error) {

	if variant != "" && variant != models.VariantCIB {
		return models.CartView{}, errors.BadRequestError("Unknown product variant")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.session(ctx, sessionID)
	key := KeyFor(product.SKU, variant)

	merged := false

	for i := range st.items {
		if Key(st.items[i]) == key {
			if st.items[i].Quantity < models.MaxQuantity {
				st.items[i].Quantity++
			}

			merged = true

			break
		}
	}

	if !merged {
		st.items = append(st.items, models.CartItem{
			Product:  product,
			Quantity: 1,
			Variant:  variant,
		})
	}

	m.persist(ctx, sessionID, st)
	metrics.RecordCartMutation("add")

	m.notifier.Publish(Event{
		SessionID: sessionID,
		SKU:       product.SKU,
		Variant:   variant,
		Quantity:  1,
	})

	return m.view(st), nil
}

// RemoveItem is a no-op when the key is absent.
func (m *Manager) RemoveItem(ctx context.Context, sessionID, key string) models.CartView {

	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.session(ctx, sessionID)

	filtered := st.items[:0]

	for _, item := range st.items {
		if Key(item) != key {
			filtered = append(filtered, item)
		}
	}

	st.items = filtered

	m.persist(ctx, sessionID, st)
	metrics.RecordCartMutation("remove")

	return m.view(st)
}

// UpdateQuantity treats a non-positive quantity as removal and clamps the
// rest into [1, MaxQuantity].
func (m *Manager) UpdateQuantity(ctx context.Context, sessionID, key string, quantity int) models.CartView {

	if quantity <= 0 {
		return m.RemoveItem(ctx, sessionID, key)
	}

	clamped := int(math.Min(float64(quantity), models.MaxQuantity))

	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.session(ctx, sessionID)

	for i := range st.items {
		if Key(st.items[i]) == key {
			st.items[i].Quantity = clamped

			break
		}
	}

	m.persist(ctx, sessionID, st)
	metrics.RecordCartMutation("update")

	return m.view(st)
}

// Clear empties the cart and detaches any discount. Idempotent: clearing an
// already-empty cart is safe, which the status reconciler relies on.
func (m *Manager) Clear(ctx context.Context, sessionID string) models.CartView {

	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.session(ctx, sessionID)
	st.items = nil
	st.discount = nil

	m.persist(ctx, sessionID, st)
	metrics.RecordCartMutation("clear")

	return m.view(st)
}

func (m *Manager) View(ctx context.Context, sessionID string) models.CartView {

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.view(m.session(ctx, sessionID))
}

// ApplyDiscount validates the code against the live subtotal. A newly applied
// code replaces the previous one; it never stacks.
func (m *Manager) ApplyDiscount(ctx context.Context, sessionID, code string) (string, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.session(ctx, sessionID)

	applied, err := m.engine.Validate(ctx, code, subtotal(st.items))
	if err != nil {
		metrics.RecordDiscountValidation(false)

		return "", err
	}

	st.discount = applied
	m.persist(ctx, sessionID, st)
	metrics.RecordDiscountValidation(true)

	return discount.SuccessMessage(applied), nil
}

// RemoveDiscount detaches the active code unconditionally. Idempotent.
func (m *Manager) RemoveDiscount(ctx context.Context, sessionID string) models.CartView {

	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.session(ctx, sessionID)
	st.discount = nil

	m.persist(ctx, sessionID, st)

	return m.view(st)
}

// session returns the in-memory state, hydrating from the store on first
// access. Anything the store could not produce is simply an empty cart.
func (m *Manager) session(ctx context.Context, sessionID string) *state {

	if st, ok := m.sessions[sessionID]; ok {
		return st
	}

	st := &state{
		items:    m.store.LoadItems(ctx, sessionID),
		discount: m.store.LoadDiscount(ctx, sessionID),
	}

	m.sessions[sessionID] = st

	return st
}

// persist writes through to durable storage. Failures (quota, connectivity)
// are logged and swallowed: the in-memory cart stays authoritative and the
// user is never blocked on storage.
func (m *Manager) persist(ctx context.Context, sessionID string, st *state) {

	if err := m.store.SaveItems(ctx, sessionID, st.items); err != nil {
		slog.Warn("Cart persistence failed", slog.String("session", sessionID), slog.Any("error", err))
	}

	if err := m.store.SaveDiscount(ctx, sessionID, st.discount); err != nil {
		slog.Warn("Discount persistence failed", slog.String("session", sessionID), slog.Any("error", err))
	}
}

func (m *Manager) view(st *state) models.CartView {

	items := make([]models.CartItem, len(st.items))
	copy(items, st.items)

	sub := subtotal(st.items)
	amount := m.engine.Amount(st.discount, sub)

	count := 0
	for _, item := range st.items {
		count += item.Quantity
	}

	return models.CartView{
		Items:          items,
		Subtotal:       sub,
		Discount:       st.discount,
		DiscountAmount: amount,
		Total:          roundCents(math.Max(0, sub-amount)),
		ItemCount:      count,
	}
}

// subtotal accumulates line prices and rounds once at the end, so the view
// never leaks float drift like 119.97999999999999 into API responses.
func subtotal(items []models.CartItem) float64 {

	var total float64

	for _, item := range items {
		total += UnitPrice(item) * float64(item.Quantity)
	}

	return roundCents(total)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
