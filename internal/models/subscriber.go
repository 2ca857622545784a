package models

import "time"

// Subscriber is a newsletter signup. Each signup receives a single-use
// GE-XXXXXX discount code.
type Subscriber struct {
	Email        string    `json:"email"`
	DiscountCode string    `json:"discount_code"`
	CodeUsed     bool      `json:"code_used"`
	CreatedAt    time.Time `json:"created_at"`
}

type NewsletterRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type NewsletterResponse struct {
	Success      bool   `json:"success"`
	DiscountCode string `json:"discount_code,omitempty"`
	Message      string `json:"message"`
}
