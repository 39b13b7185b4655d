package model

import "time"

// DiscountType enumerates how a discount reduces a price.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	DiscountTypeFixed      DiscountType = "FIXED"
)

// Discount is a checkout discount as returned by the discount lookup.
// Percentage is set for PERCENTAGE discounts; FixedPrice (a wire price
// string) with Currency for FIXED ones.
type Discount struct {
	Code         string       `json:"code"`
	Type         DiscountType `json:"type"`
	Percentage   int          `json:"percentage,omitempty"`
	FixedPrice   string       `json:"fixedPrice,omitempty"`
	Currency     string       `json:"currency,omitempty"`
	StartDate    *time.Time   `json:"startDate,omitempty"`
	EndDate      *time.Time   `json:"endDate,omitempty"`
	MaxUsage     int          `json:"maxUsage"`
	CurrentUsage int          `json:"currentUsage"`
}

// Active reports whether the discount is inside its validity window and
// has usage left at the given instant. Display hint only; the backend
// enforces this on redemption.
func (d *Discount) Active(now time.Time) bool {
	if d.StartDate != nil && now.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && now.After(*d.EndDate) {
		return false
	}
	return d.MaxUsage == 0 || d.CurrentUsage < d.MaxUsage
}
