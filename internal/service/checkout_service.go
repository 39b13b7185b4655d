package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/edupress/courseplayer/internal/model"
	"github.com/edupress/courseplayer/internal/pricing"
	"github.com/edupress/courseplayer/internal/upstream"
)

// CheckoutService computes discount quotes for checkout display. Redemption
// and final charging stay upstream; this only prices the preview.
type CheckoutService struct {
	api *upstream.Client
	log zerolog.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(api *upstream.Client, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{api: api, log: log}
}

// DiscountQuote is the priced result of applying a discount code to an
// original price.
type DiscountQuote struct {
	Discount      model.Discount `json:"discount"`
	OriginalPrice pricing.Price  `json:"originalPrice"`
	FinalPrice    pricing.Price  `json:"finalPrice"`
	Savings       pricing.Price  `json:"savings"`
	Active        bool           `json:"active"`
}

// Quote looks up a discount code and applies it to the original price.
// PERCENTAGE discounts reduce by their percentage; FIXED discounts subtract
// their fixed price, which by the platform's invariants shares the course
// currency.
func (s *CheckoutService) Quote(ctx context.Context, token, code string, originalPrice pricing.Price) (*DiscountQuote, error) {
	discount, err := s.api.Discount(ctx, token, code, originalPrice.String())
	if err != nil {
		return nil, err
	}

	quote := &DiscountQuote{
		Discount:      *discount,
		OriginalPrice: originalPrice,
		Active:        discount.Active(time.Now()),
	}

	switch discount.Type {
	case model.DiscountTypePercentage:
		quote.FinalPrice = originalPrice.PercentOff(discount.Percentage)
	case model.DiscountTypeFixed:
		fixed, err := pricing.Parse(discount.FixedPrice)
		if err != nil {
			return nil, err
		}
		quote.FinalPrice = originalPrice.Sub(fixed)
	default:
		quote.FinalPrice = originalPrice
	}
	quote.Savings = originalPrice.Sub(quote.FinalPrice)

	return quote, nil
}
