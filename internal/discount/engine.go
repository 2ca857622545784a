package discount

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/retrogameshop/storefront-platform/internal/errors"
	"github.com/retrogameshop/storefront-platform/internal/models"
)

// Newsletter signup codes have the shape GE-XXXXXX and live outside the static
// registry; they are resolved through a CodeSource.
var newsletterCodePattern = regexp.MustCompile(`^GE-[A-Z0-9]{6}$`)

const newsletterCodePercentage = 10

// CodeSource resolves dynamically issued codes. The subscriber repository
// satisfies this; a nil source simply makes newsletter codes invalid.
type CodeSource interface {
	GetByCode(ctx context.Context, code string) (*models.Subscriber, error)
}

// Engine validates discount codes and quotes amounts against a live subtotal.
// Amounts are never stored: a code that no longer meets its minimum order
// quotes to zero while staying applied.
type Engine struct {
	registry map[string]models.DiscountCode
	source   CodeSource
}

func NewEngine(source CodeSource) *Engine {

	e := &Engine{
		registry: make(map[string]models.DiscountCode),
		source:   source,
	}

	for _, c := range defaultRegistry {
		e.registry[c.Code] = c
	}

	return e
}

// Normalize trims and uppercases user input before lookup.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsNewsletterCode reports whether a code came from a newsletter signup.
func IsNewsletterCode(code string) bool {
	return newsletterCodePattern.MatchString(Normalize(code))
}

// Validate resolves a code against the registry (or the newsletter code
// source) and checks its minimum-order gate against the given subtotal.
func (e *Engine) Validate(ctx context.Context, code string, subtotal float64) (*models.AppliedDiscount, error) {

	normalized := Normalize(code)

	if entry, ok := e.registry[normalized]; ok {

		if entry.MinOrder > 0 && subtotal < entry.MinOrder {
			return nil, errors.MinOrderError(fmt.Sprintf("Minimale bestelling van €%s vereist", formatAmount(entry.MinOrder)))
		}

		return &models.AppliedDiscount{
			Code:        entry.Code,
			Type:        entry.Type,
			Value:       entry.Value,
			MinOrder:    entry.MinOrder,
			Description: entry.Description,
		}, nil
	}

	if newsletterCodePattern.MatchString(normalized) && e.source != nil {

		sub, err := e.source.GetByCode(ctx, normalized)
		if err != nil || sub == nil {
			return nil, errors.InvalidDiscountError("Ongeldige kortingscode")
		}

		if sub.CodeUsed {
			return nil, errors.InvalidDiscountError("Deze code is al gebruikt")
		}

		return &models.AppliedDiscount{
			Code:        normalized,
			Type:        models.DiscountTypePercentage,
			Value:       newsletterCodePercentage,
			Description: fmt.Sprintf("%d%% korting - Nieuwsbrief abonnement", newsletterCodePercentage),
		}, nil
	}

	return nil, errors.InvalidDiscountError("Ongeldige kortingscode")
}

// Amount quotes the discount for the current subtotal. Below the minimum
// order the code contributes zero but remains applied; a fixed code never
// discounts past the subtotal.
func (e *Engine) Amount(d *models.AppliedDiscount, subtotal float64) float64 {

	if d == nil {
		return 0
	}

	if d.MinOrder > 0 && subtotal < d.MinOrder {
		return 0
	}

	switch d.Type {
	case models.DiscountTypePercentage:
		return round2(subtotal * d.Value / 100)
	case models.DiscountTypeFixed:
		return math.Min(d.Value, subtotal)
	}

	return 0
}

// Quote produces the server-authoritative validation payload used at
// checkout time.
func (e *Engine) Quote(ctx context.Context, code string, subtotal float64) (*models.DiscountQuote, error) {

	applied, err := e.Validate(ctx, code, subtotal)
	if err != nil {
		return nil, err
	}

	quote := &models.DiscountQuote{
		Valid:          true,
		Code:           applied.Code,
		DiscountAmount: e.Amount(applied, subtotal),
		Description:    applied.Description,
		MaxUses:        1,
	}

	if applied.Type == models.DiscountTypePercentage {
		quote.DiscountPercentage = applied.Value
	}

	return quote, nil
}

// Exists is the lightweight existence check; it ignores minimum-order gating.
func (e *Engine) Exists(ctx context.Context, code string) bool {

	normalized := Normalize(code)

	if _, ok := e.registry[normalized]; ok {
		return true
	}

	if newsletterCodePattern.MatchString(normalized) && e.source != nil {
		sub, err := e.source.GetByCode(ctx, normalized)

		return err == nil && sub != nil && !sub.CodeUsed
	}

	return false
}

// SuccessMessage is the user-facing confirmation shown after applying a code.
func SuccessMessage(d *models.AppliedDiscount) string {
	return d.Description + " toegepast!"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
