package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"

	"github.com/edupress/courseplayer/internal/model"
	"github.com/edupress/courseplayer/internal/pricing"
	"github.com/edupress/courseplayer/internal/upstream"
)

func TestQuotePercentageDiscount(t *testing.T) {
	var gotPrice string
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrice = r.URL.Query().Get("originalPrice")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.Discount{
			Code:       "SAVE10",
			Type:       model.DiscountTypePercentage,
			Percentage: 10,
			MaxUsage:   100,
		})
	}))
	svc := NewCheckoutService(api, zerolog.Nop())

	quote, err := svc.Quote(context.Background(), "tok", "SAVE10", pricing.MustParse("USD200.00"))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if gotPrice != "USD200.00" {
		t.Fatalf("originalPrice query = %q", gotPrice)
	}
	if quote.FinalPrice.String() != "USD180.00" {
		t.Fatalf("final price = %s", quote.FinalPrice)
	}
	if quote.Savings.String() != "USD20.00" {
		t.Fatalf("savings = %s", quote.Savings)
	}
	if !quote.Active {
		t.Fatal("discount with open window and usage left must be active")
	}
}

func TestQuoteFixedDiscount(t *testing.T) {
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.Discount{
			Code:       "FLAT",
			Type:       model.DiscountTypeFixed,
			FixedPrice: "VND400.00",
			Currency:   "VND",
		})
	}))
	svc := NewCheckoutService(api, zerolog.Nop())

	quote, err := svc.Quote(context.Background(), "tok", "FLAT", pricing.MustParse("VND1,000.00"))
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if quote.FinalPrice.String() != "VND600.00" {
		t.Fatalf("final price = %s", quote.FinalPrice)
	}
	if quote.Savings.String() != "VND400.00" {
		t.Fatalf("savings = %s", quote.Savings)
	}
}

func TestQuoteUnknownCode(t *testing.T) {
	api := upstreamClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	svc := NewCheckoutService(api, zerolog.Nop())

	_, err := svc.Quote(context.Background(), "tok", "NOPE", pricing.MustParse("USD10.00"))
	if !errors.Is(err, upstream.ErrNotFound) {
		t.Fatalf("unknown code error = %v", err)
	}
}
