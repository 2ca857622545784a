package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/retrogameshop/storefront-platform/internal/cart"
	"github.com/retrogameshop/storefront-platform/internal/catalog"
	"github.com/retrogameshop/storefront-platform/internal/discount"
	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/retrogameshop/storefront-platform/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// memStore keeps cart state in memory so handler tests exercise the real
// manager without Redis.
type memStore struct {
	mu        sync.Mutex
	items     map[string][]models.CartItem
	discounts map[string]*models.AppliedDiscount
}

func newMemStore() *memStore {
	return &memStore{
		items:     make(map[string][]models.CartItem),
		discounts: make(map[string]*models.AppliedDiscount),
	}
}

func (s *memStore) LoadItems(_ context.Context, sessionID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.items[sessionID]
}

func (s *memStore) LoadDiscount(_ context.Context, sessionID string) *models.AppliedDiscount {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.discounts[sessionID]
}

func (s *memStore) SaveItems(_ context.Context, sessionID string, items []models.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[sessionID] = items

	return nil
}

func (s *memStore) SaveDiscount(_ context.Context, sessionID string, d *models.AppliedDiscount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.discounts[sessionID] = d

	return nil
}

// stubCodeSource serves newsletter codes from a fixed map.
type stubCodeSource struct {
	subscribers map[string]*models.Subscriber
}

func (s *stubCodeSource) GetByCode(_ context.Context, code string) (*models.Subscriber, error) {
	if sub, ok := s.subscribers[code]; ok {
		return sub, nil
	}

	return nil, context.Canceled
}

func floatPtr(v float64) *float64 { return &v }

func testCatalog() *catalog.Catalog {
	return catalog.New([]models.Product{
		{SKU: "smb3", Name: "Super Mario Bros. 3", Platform: "NES", Genre: "Platformer", Price: 39.99, CibPrice: floatPtr(79.99)},
		{SKU: "zelda-oot", Name: "Ocarina of Time", Platform: "N64", Genre: "Adventure", Price: 49.99},
		{SKU: "mk64", Name: "Mario Kart 64", Platform: "N64", Genre: "Racing", Price: 44.99},
	})
}

func newTestManager() *cart.Manager {
	return cart.NewManager(newMemStore(), discount.NewEngine(&stubCodeSource{}))
}

// decodeResponse unmarshals the standard API envelope and re-decodes the data
// payload into dest.
func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, dest any) *response.APIResponse {
	t.Helper()

	var envelope response.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))

	if dest != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}

	return &envelope
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	envelope := decodeResponse(t, rr, nil)
	require.NotNil(t, envelope.Error)

	return envelope.Error.Code
}
