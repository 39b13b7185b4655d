package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupress/courseplayer/internal/coursechange"
	"github.com/edupress/courseplayer/internal/middleware"
	"github.com/edupress/courseplayer/internal/pricing"
	"github.com/edupress/courseplayer/internal/response"
	"github.com/edupress/courseplayer/internal/service"
	"github.com/edupress/courseplayer/internal/upstream"
	"github.com/edupress/courseplayer/internal/validator"
)

// CheckoutHandler handles discount quoting and course changes.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	changeService   *service.CourseChangeService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService, changeService *service.CourseChangeService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, changeService: changeService}
}

// GetDiscountQuote godoc
// GET /api/v1/checkout/discounts/:code?original_price=VND1,000.00
// Looks up a discount code and prices it against the original price.
// An unknown code comes back as a field-scoped error on the code input.
func (h *CheckoutHandler) GetDiscountQuote(c *gin.Context) {
	original, err := pricing.Parse(c.Query("original_price"))
	if err != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			"original_price": "must be a currency-prefixed price string",
		})
		return
	}

	quote, err := h.checkoutService.Quote(c.Request.Context(), middleware.GetToken(c), c.Param("code"), original)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			response.FailWithFields(c, http.StatusNotFound, response.ErrDiscountNotFound, map[string]string{
				"code": "unknown discount code",
			})
			return
		}
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, quote)
}

// changeCourseQuery is the query-string payload of the change-course call.
type changeCourseQuery struct {
	CourseID string `form:"course_id" json:"course_id" binding:"required"`
}

// ChangeCourse godoc
// PUT /api/v1/enrollments/:enrollment_id/change-course?course_id=...
// Performs a course swap and reports the follow-up step. On rejection the
// original enrollment stays authoritative; no state is touched.
func (h *CheckoutHandler) ChangeCourse(c *gin.Context) {
	var q changeCourseQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	outcome, err := h.changeService.Change(c.Request.Context(), middleware.GetToken(c), c.Param("enrollment_id"), q.CourseID)
	if err != nil {
		if errors.Is(err, coursechange.ErrChangeRejected) {
			response.Fail(c, http.StatusConflict, response.ErrCourseChangeFailed)
			return
		}
		failFromErr(c, err)
		return
	}

	body := gin.H{"step": outcome.Step}
	if outcome.OrderID != "" {
		body["order_id"] = outcome.OrderID
	}
	if outcome.PriceAdditional != nil {
		body["price_additional"] = outcome.PriceAdditional
	}
	response.Success(c, http.StatusOK, body)
}
