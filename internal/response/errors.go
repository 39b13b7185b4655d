package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrTokenRequired  ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid   ErrCode = "TOKEN_INVALID"
	ErrSessionExpired ErrCode = "SESSION_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Player / quiz ─────────────────────────────────────────────────
	ErrLessonNotInCourse ErrCode = "LESSON_NOT_IN_COURSE"
	ErrQuizAnswerInvalid ErrCode = "QUIZ_ANSWER_INVALID"

	// ─── Checkout / course change ──────────────────────────────────────
	ErrDiscountNotFound   ErrCode = "DISCOUNT_NOT_FOUND"
	ErrCourseChangeFailed ErrCode = "COURSE_CHANGE_FAILED"

	// ─── Upstream / server ─────────────────────────────────────────────
	ErrUpstreamUnavailable ErrCode = "UPSTREAM_UNAVAILABLE"
	ErrInternal            ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrSessionExpired:
		return "Your session has expired. Please sign in again."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid identifier format."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "The requested resource was not found."

	// ─── Player / quiz ─────────────────────────────────────────────────
	case ErrLessonNotInCourse:
		return "This lesson does not belong to the enrolled course."
	case ErrQuizAnswerInvalid:
		return "One or more quiz answers are invalid."

	// ─── Checkout / course change ──────────────────────────────────────
	case ErrDiscountNotFound:
		return "This discount code was not found."
	case ErrCourseChangeFailed:
		return "The course change could not be completed. Your current course is unchanged."

	// ─── Upstream / server ─────────────────────────────────────────────
	case ErrUpstreamUnavailable:
		return "The learning platform is temporarily unavailable."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
