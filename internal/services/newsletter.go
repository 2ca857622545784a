package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/models"
	repository "github.com/retrogameshop/storefront-platform/internal/repositories"
	"github.com/retrogameshop/storefront-platform/pkg/sendgrid"

	"github.com/google/uuid"
)

type NewsletterService struct {
	subscriberRepo repository.SubscriberRepository
	email          sendgrid.EmailService
}

func NewNewsletterService(subscriberRepo repository.SubscriberRepository, email sendgrid.EmailService) *NewsletterService {
	return &NewsletterService{subscriberRepo: subscriberRepo, email: email}
}

// Subscribe registers an email address and hands out a fresh single-use
// discount code. Repeat signups get their existing code back instead of a
// new one.
func (s *NewsletterService) Subscribe(ctx context.Context, req *models.NewsletterRequest) (*models.NewsletterResponse, error) {

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.subscriberRepo.GetByEmail(ctx, email); err == nil {
		return &models.NewsletterResponse{
			Success:      true,
			DiscountCode: existing.DiscountCode,
			Message:      "Je bent al aangemeld!",
		}, nil
	}

	subscriber := &models.Subscriber{
		Email:        email,
		DiscountCode: generateDiscountCode(),
	}

	if err := s.subscriberRepo.CreateSubscriber(ctx, subscriber); err != nil {
		return nil, errors.DatabaseError("Failed to create subscriber").WithError(err)
	}

	s.sendWelcome(ctx, subscriber)

	return &models.NewsletterResponse{
		Success:      true,
		DiscountCode: subscriber.DiscountCode,
		Message:      "Welkom! Gebruik code " + subscriber.DiscountCode + " voor 10% korting.",
	}, nil
}

func (s *NewsletterService) sendWelcome(ctx context.Context, subscriber *models.Subscriber) {

	err := s.email.Send(ctx, &sendgrid.Email{
		To:      subscriber.Email,
		Subject: "Welkom bij de nieuwsbrief",
		Content: "Bedankt voor je aanmelding! Je persoonlijke kortingscode is " +
			subscriber.DiscountCode + ". De code is eenmalig geldig en geeft 10% korting.",
	})
	if err != nil {
		slog.Warn("Failed to send welcome email",
			slog.String("email", subscriber.Email),
			slog.String("error", err.Error()))
	}
}

// generateDiscountCode builds a GE-XXXXXX code from the leading hex of a
// fresh UUID, which keeps codes unguessable without a dedicated generator.
func generateDiscountCode() string {
	return "GE-" + strings.ToUpper(uuid.New().String()[:6])
}
