// Package coursechange interprets the backend's course-swap pricing decision
// and selects the follow-up step. No price computation happens here; the
// decision arrives fully formed and is only dispatched on.
package coursechange

import (
	"errors"
	"fmt"

	"github.com/edupress/courseplayer/internal/model"
	"github.com/edupress/courseplayer/internal/pricing"
)

// Step enumerates the follow-up actions after a course swap.
type Step string

const (
	// StepCourseView: the swap is final, no payment needed; go straight to
	// the new course's content.
	StepCourseView Step = "COURSE_VIEW"
	// StepPayment: an additional-payment order was opened; route to the
	// payment flow for that order.
	StepPayment Step = "PAYMENT"
)

// ErrChangeRejected is returned for FAILED responses and any unrecognized
// (type, status) combination. The caller must leave the original enrollment
// authoritative and surface the failure; no state transition applies.
var ErrChangeRejected = errors.New("course change rejected")

// Outcome is the resolved follow-up of a successful course swap.
type Outcome struct {
	Step            Step
	OrderID         string
	PriceAdditional *pricing.Price
}

// Reconcile maps a ChangeCourseResponse onto the next step.
func Reconcile(resp *model.ChangeCourseResponse) (*Outcome, error) {
	switch {
	case resp.Type == model.ChangeCourseBasic && resp.Status == model.ChangeCourseSuccess:
		return &Outcome{Step: StepCourseView}, nil

	case resp.Type == model.ChangeCoursePendingAdditional && resp.Status == model.ChangeCoursePending:
		out := &Outcome{Step: StepPayment, OrderID: resp.OrderID}
		if resp.PriceAdditional != "" {
			p, err := pricing.Parse(resp.PriceAdditional)
			if err != nil {
				// A payment step without a readable price cannot be
				// routed; treat it like any other unusable response.
				return nil, fmt.Errorf("%w: additional price %q: %v", ErrChangeRejected, resp.PriceAdditional, err)
			}
			out.PriceAdditional = &p
		}
		return out, nil

	default:
		return nil, ErrChangeRejected
	}
}
