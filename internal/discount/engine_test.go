package discount_test

import (
	"context"
	"testing"

	"github.com/retrogameshop/storefront-platform/internal/discount"
	appErrors "github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCodeSource struct {
	mock.Mock
}

func (m *mockCodeSource) GetByCode(ctx context.Context, code string) (*models.Subscriber, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Subscriber), args.Error(1)
}

func TestValidate(t *testing.T) {
	source := &mockCodeSource{}
	engine := discount.NewEngine(source)
	ctx := context.Background()

	t.Run("Fixed Code Below Minimum Order", func(t *testing.T) {
		// Act
		applied, err := engine.Validate(ctx, "RETRO5", 25)

		// Assert
		require.Error(t, err)
		assert.Nil(t, applied)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeMinOrder, appErr.Code)
		assert.Equal(t, "Minimale bestelling van €30 vereist", appErr.Message)
	})

	t.Run("Fixed Code At Minimum Order", func(t *testing.T) {
		applied, err := engine.Validate(ctx, "RETRO5", 35)

		require.NoError(t, err)
		require.NotNil(t, applied)
		assert.Equal(t, models.DiscountTypeFixed, applied.Type)
		assert.Equal(t, 5.0, applied.Value)
		assert.Equal(t, 5.0, engine.Amount(applied, 35))
	})

	t.Run("Percentage Code", func(t *testing.T) {
		applied, err := engine.Validate(ctx, "GAMESHOP20", 150)

		require.NoError(t, err)
		assert.Equal(t, 30.0, engine.Amount(applied, 150))
	})

	t.Run("Input Is Normalized", func(t *testing.T) {
		applied, err := engine.Validate(ctx, "  welkom10  ", 50)

		require.NoError(t, err)
		assert.Equal(t, "WELKOM10", applied.Code)
	})

	t.Run("Unknown Code", func(t *testing.T) {
		_, err := engine.Validate(ctx, "BOGUS", 100)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeInvalidDiscount, appErr.Code)
		assert.Equal(t, "Ongeldige kortingscode", appErr.Message)
	})

	t.Run("Newsletter Code - Fresh", func(t *testing.T) {
		// Arrange
		source.On("GetByCode", ctx, "GE-ABC123").
			Return(&models.Subscriber{Email: "fan@example.com", DiscountCode: "GE-ABC123"}, nil).Once()

		// Act
		applied, err := engine.Validate(ctx, "ge-abc123", 50)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, models.DiscountTypePercentage, applied.Type)
		assert.Equal(t, 10.0, applied.Value)
		assert.Equal(t, 5.0, engine.Amount(applied, 50))
		source.AssertExpectations(t)
	})

	t.Run("Newsletter Code - Already Used", func(t *testing.T) {
		source.On("GetByCode", ctx, "GE-USED00").
			Return(&models.Subscriber{DiscountCode: "GE-USED00", CodeUsed: true}, nil).Once()

		_, err := engine.Validate(ctx, "GE-USED00", 50)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Deze code is al gebruikt", appErr.Message)
		source.AssertExpectations(t)
	})

	t.Run("Newsletter Code - Unknown", func(t *testing.T) {
		source.On("GetByCode", ctx, "GE-NOPE99").Return(nil, assert.AnError).Once()

		_, err := engine.Validate(ctx, "GE-NOPE99", 50)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Ongeldige kortingscode", appErr.Message)
	})
}

func TestAmount(t *testing.T) {
	engine := discount.NewEngine(nil)

	retro5 := &models.AppliedDiscount{Code: "RETRO5", Type: models.DiscountTypeFixed, Value: 5, MinOrder: 30}
	gameshop20 := &models.AppliedDiscount{Code: "GAMESHOP20", Type: models.DiscountTypePercentage, Value: 20, MinOrder: 100}

	t.Run("Nil Discount Quotes Zero", func(t *testing.T) {
		assert.Equal(t, 0.0, engine.Amount(nil, 100))
	})

	t.Run("Below Minimum Quotes Zero But Stays Applied", func(t *testing.T) {
		assert.Equal(t, 0.0, engine.Amount(retro5, 20))
		assert.Equal(t, 0.0, engine.Amount(gameshop20, 99.99))
	})

	t.Run("Percentage Rounds To Cents", func(t *testing.T) {
		d := &models.AppliedDiscount{Type: models.DiscountTypePercentage, Value: 10}
		assert.Equal(t, 3.33, engine.Amount(d, 33.33))
	})

	t.Run("Fixed Never Exceeds Subtotal", func(t *testing.T) {
		d := &models.AppliedDiscount{Type: models.DiscountTypeFixed, Value: 5}
		assert.Equal(t, 2.5, engine.Amount(d, 2.5))
	})
}

func TestQuote(t *testing.T) {
	engine := discount.NewEngine(nil)
	ctx := context.Background()

	t.Run("Valid Percentage Quote", func(t *testing.T) {
		quote, err := engine.Quote(ctx, "GAMESHOP20", 150)

		require.NoError(t, err)
		assert.True(t, quote.Valid)
		assert.Equal(t, "GAMESHOP20", quote.Code)
		assert.Equal(t, 20.0, quote.DiscountPercentage)
		assert.Equal(t, 30.0, quote.DiscountAmount)
		assert.Equal(t, 1, quote.MaxUses)
	})

	t.Run("Fixed Quote Has No Percentage", func(t *testing.T) {
		quote, err := engine.Quote(ctx, "RETRO5", 40)

		require.NoError(t, err)
		assert.Equal(t, 0.0, quote.DiscountPercentage)
		assert.Equal(t, 5.0, quote.DiscountAmount)
	})

	t.Run("Invalid Code Propagates Error", func(t *testing.T) {
		_, err := engine.Quote(ctx, "BOGUS", 40)
		assert.Error(t, err)
	})
}

func TestExists(t *testing.T) {
	source := &mockCodeSource{}
	engine := discount.NewEngine(source)
	ctx := context.Background()

	assert.True(t, engine.Exists(ctx, "retro5"), "ignores minimum order gating")
	assert.False(t, engine.Exists(ctx, "BOGUS"))

	source.On("GetByCode", ctx, "GE-ABC123").
		Return(&models.Subscriber{DiscountCode: "GE-ABC123"}, nil).Once()
	assert.True(t, engine.Exists(ctx, "GE-ABC123"))
}

func TestIsNewsletterCode(t *testing.T) {
	assert.True(t, discount.IsNewsletterCode("GE-ABC123"))
	assert.True(t, discount.IsNewsletterCode("ge-abc123"))
	assert.False(t, discount.IsNewsletterCode("GE-ABC"))
	assert.False(t, discount.IsNewsletterCode("RETRO5"))
	assert.False(t, discount.IsNewsletterCode(""))
}

func TestSuccessMessage(t *testing.T) {
	d := &models.AppliedDiscount{Description: "20% korting"}
	assert.Equal(t, "20% korting toegepast!", discount.SuccessMessage(d))
}
