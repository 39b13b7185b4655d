package model

// ChangeCourseType enumerates the pricing decision of a course swap.
type ChangeCourseType string

const (
	ChangeCourseBasic             ChangeCourseType = "BASIC_CHANGE"
	ChangeCoursePendingAdditional ChangeCourseType = "PENDING_PAYMENT_ADDITIONAL"
)

// ChangeCourseStatus enumerates the result states of a course swap.
type ChangeCourseStatus string

const (
	ChangeCourseSuccess ChangeCourseStatus = "SUCCESS"
	ChangeCourseFailed  ChangeCourseStatus = "FAILED"
	ChangeCoursePending ChangeCourseStatus = "PENDING"
)

// ChangeCourseResponse is the backend's decision on a course-swap request.
// The price decision is computed entirely upstream; this service only
// dispatches on the tagged (type, status) pair.
type ChangeCourseResponse struct {
	Type            ChangeCourseType   `json:"type"`
	Status          ChangeCourseStatus `json:"status"`
	OrderID         string             `json:"orderId,omitempty"`
	PriceAdditional string             `json:"priceAdditional,omitempty"`
}
