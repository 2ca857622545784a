package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// DecodeJSONBody reads and unmarshals a request body into dest. An empty
// body is rejected: every mutating endpoint of the storefront carries a
// payload.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Warn("Failed to read request body",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to read request body: %w", err)
	}

	if len(body) == 0 {
		return errors.New("request body cannot be empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		slog.Warn("Request body is not valid JSON",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}

// ValidateStruct runs struct-tag validation and wraps the field errors so
// callers can surface them as a 400.
func ValidateStruct(validate *validator.Validate, data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fmt.Errorf("validation error: %w", validationErrs)
	}

	slog.Error("Unexpected validation error", slog.String("error", err.Error()))
	return fmt.Errorf("unexpected validation error: %w", err)
}
