package repository_test

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/retrogameshop/storefront-platform/internal/models"
	repository "github.com/retrogameshop/storefront-platform/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSubscriberRepoTest(t *testing.T) (repository.SubscriberRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	return repository.NewSubscriberRepo(db), mock
}

func TestCreateSubscriber(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setupSubscriberRepoTest(t)
		subscriber := &models.Subscriber{Email: "fan@example.com", DiscountCode: "GE-ABC123"}

		mock.ExpectQuery(`INSERT INTO subscribers`).
			WithArgs(subscriber.Email, subscriber.DiscountCode).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		// Act
		err := repo.CreateSubscriber(ctx, subscriber)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, now, subscriber.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Database Error", func(t *testing.T) {
		repo, mock := setupSubscriberRepoTest(t)

		mock.ExpectQuery(`INSERT INTO subscribers`).WillReturnError(assert.AnError)

		err := repo.CreateSubscriber(ctx, &models.Subscriber{Email: "fan@example.com", DiscountCode: "GE-ABC123"})
		assert.Error(t, err)
	})
}

func TestGetByCode(t *testing.T) {
	ctx := t.Context()
	now := time.Now()

	expectedSQL := regexp.QuoteMeta(`WHERE discount_code = $1`)

	t.Run("Success", func(t *testing.T) {
		repo, mock := setupSubscriberRepoTest(t)

		mock.ExpectQuery(expectedSQL).
			WithArgs("GE-ABC123").
			WillReturnRows(sqlmock.NewRows([]string{"email", "discount_code", "code_used", "created_at"}).
				AddRow("fan@example.com", "GE-ABC123", false, now))

		subscriber, err := repo.GetByCode(ctx, "GE-ABC123")

		require.NoError(t, err)
		assert.Equal(t, "fan@example.com", subscriber.Email)
		assert.False(t, subscriber.CodeUsed)
	})

	t.Run("Failure - Unknown Code", func(t *testing.T) {
		repo, mock := setupSubscriberRepoTest(t)

		mock.ExpectQuery(expectedSQL).
			WithArgs("GE-NOPE99").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByCode(ctx, "GE-NOPE99")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestGetByEmail(t *testing.T) {
	ctx := t.Context()
	repo, mock := setupSubscriberRepoTest(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE email = $1`)).
		WithArgs("fan@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"email", "discount_code", "code_used", "created_at"}).
			AddRow("fan@example.com", "GE-ABC123", true, time.Now()))

	subscriber, err := repo.GetByEmail(ctx, "fan@example.com")

	require.NoError(t, err)
	assert.Equal(t, "GE-ABC123", subscriber.DiscountCode)
	assert.True(t, subscriber.CodeUsed)
}

func TestMarkCodeUsed(t *testing.T) {
	ctx := t.Context()
	repo, mock := setupSubscriberRepoTest(t)

	mock.ExpectExec(`UPDATE subscribers SET code_used = TRUE`).
		WithArgs("GE-ABC123").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkCodeUsed(ctx, "GE-ABC123")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountSubscribers(t *testing.T) {
	ctx := t.Context()
	repo, mock := setupSubscriberRepoTest(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM subscribers`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountSubscribers(ctx)

	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
