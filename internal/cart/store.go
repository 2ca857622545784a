package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retrogameshop/storefront-platform/internal/config"
	"github.com/retrogameshop/storefront-platform/internal/models"
)

// Store is the durable side of a session cart. Loads are forgiving by
// contract: corrupt or absent state reads back as an empty cart, and
// individual malformed entries are filtered out rather than failing the load.
type Store interface {
	LoadItems(ctx context.Context, sessionID string) []models.CartItem
	LoadDiscount(ctx context.Context, sessionID string) *models.AppliedDiscount
	SaveItems(ctx context.Context, sessionID string, items []models.CartItem) error
	SaveDiscount(ctx context.Context, sessionID string, d *models.AppliedDiscount) error
}

type redisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, cfg *config.Cart) Store {
	return &redisStore{
		client: client,
		prefix: cfg.KeyPrefix,
		ttl:    cfg.TTL,
	}
}

func (s *redisStore) cartKey(sessionID string) string {
	return fmt.Sprintf("%s:cart:%s", s.prefix, sessionID)
}

func (s *redisStore) discountKey(sessionID string) string {
	return fmt.Sprintf("%s:discount:%s", s.prefix, sessionID)
}

func (s *redisStore) LoadItems(ctx context.Context, sessionID string) []models.CartItem {

	data, err := s.client.Get(ctx, s.cartKey(sessionID)).Bytes()
	if err != nil {

		if err != redis.Nil {
			slog.Warn("Failed to load persisted cart", slog.String("session", sessionID), slog.Any("error", err))
		}

		return nil
	}

	return ParseItems(data)
}

func (s *redisStore) LoadDiscount(ctx context.Context, sessionID string) *models.AppliedDiscount {

	data, err := s.client.Get(ctx, s.discountKey(sessionID)).Bytes()
	if err != nil {

		if err != redis.Nil {
			slog.Warn("Failed to load persisted discount", slog.String("session", sessionID), slog.Any("error", err))
		}

		return nil
	}

	var d models.AppliedDiscount
	if err := json.Unmarshal(data, &d); err != nil || d.Code == "" {
		return nil
	}

	return &d
}

func (s *redisStore) SaveItems(ctx context.Context, sessionID string, items []models.CartItem) error {

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	if err := s.client.Set(ctx, s.cartKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}

	return nil
}

func (s *redisStore) SaveDiscount(ctx context.Context, sessionID string, d *models.AppliedDiscount) error {

	if d == nil {
		if err := s.client.Del(ctx, s.discountKey(sessionID)).Err(); err != nil {
			return fmt.Errorf("failed to clear persisted discount: %w", err)
		}

		return nil
	}

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal discount: %w", err)
	}

	if err := s.client.Set(ctx, s.discountKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to persist discount: %w", err)
	}

	return nil
}
