// Package upstream is the client for the learning-platform REST API. It owns
// the wire contract: paths, query params and JSON shapes must match the
// platform bit-for-bit. All persistence, authorization and scoring live on
// the other side of this client.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/edupress/courseplayer/internal/config"
	"github.com/edupress/courseplayer/internal/model"
)

// Client calls the learning-platform API on behalf of a student, forwarding
// the student's bearer token unchanged.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// New creates an upstream client from configuration.
func New(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(cfg.UpstreamBaseURL).
			SetTimeout(cfg.UpstreamTimeout).
			SetHeader("Accept", "application/json"),
		log: log,
	}
}

// EnrollmentContent fetches the combined course structure + enrollment state
// for one enrollment.
func (c *Client) EnrollmentContent(ctx context.Context, token, enrollmentID string) (*model.EnrollmentContent, error) {
	var content model.EnrollmentContent
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&content).
		Get(fmt.Sprintf("/enrollments/%s/content", enrollmentID))
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("get enrollment content: %w", err)
	}
	return &content, nil
}

// MarkLesson marks a lesson completed/incomplete and returns the updated
// enrollment.
func (c *Client) MarkLesson(ctx context.Context, token, enrollmentID string, req *model.MarkLessonRequest) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(req).
		SetResult(&enrollment).
		Put(fmt.Sprintf("/enrollments/%s/mark-lesson", enrollmentID))
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("mark lesson: %w", err)
	}
	return &enrollment, nil
}

// Quiz fetches a quiz's questions and options, without correct-answer
// markers.
func (c *Client) Quiz(ctx context.Context, token, enrollmentID, quizID string) (*model.Quiz, error) {
	var quiz model.Quiz
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&quiz).
		Get(fmt.Sprintf("/enrollments/%s/quizzes/%s", enrollmentID, quizID))
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return &quiz, nil
}

// SubmitQuizRequest is the wire payload of the submit-quiz endpoint. Answers
// are pre-encoded by the quiz codec.
type SubmitQuizRequest struct {
	QuizID  string            `json:"quizId"`
	Answers []json.RawMessage `json:"answers"`
}

// SubmitQuiz posts an encoded quiz submission and returns the submission id.
func (c *Client) SubmitQuiz(ctx context.Context, token, enrollmentID string, req *SubmitQuizRequest) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(req).
		SetResult(&out).
		Post(fmt.Sprintf("/enrollments/%s/submit-quiz", enrollmentID))
	if err := c.check(resp, err); err != nil {
		return "", fmt.Errorf("submit quiz: %w", err)
	}
	return out.ID, nil
}

// Submission fetches a stored quiz submission with its upstream-computed
// score, passed and bonus flags.
func (c *Client) Submission(ctx context.Context, token, enrollmentID, submissionID string) (*model.QuizSubmission, error) {
	var sub model.QuizSubmission
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&sub).
		Get(fmt.Sprintf("/enrollments/%s/quizzes/%s/submission", enrollmentID, submissionID))
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &sub, nil
}

// ChangeCourse asks the platform to swap the enrollment onto another course.
// The pricing decision comes back fully computed.
func (c *Client) ChangeCourse(ctx context.Context, token, enrollmentID, courseID string) (*model.ChangeCourseResponse, error) {
	var change model.ChangeCourseResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("courseId", courseID).
		SetResult(&change).
		Put(fmt.Sprintf("/enrollments/%s/change-course", enrollmentID))
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("change course: %w", err)
	}
	return &change, nil
}

// Discount looks up a discount code for checkout, given the original price
// wire string.
func (c *Client) Discount(ctx context.Context, token, code, originalPrice string) (*model.Discount, error) {
	var discount model.Discount
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("originalPrice", originalPrice).
		SetResult(&discount).
		Get(fmt.Sprintf("/discounts/%s", code))
	if err := c.check(resp, err); err != nil {
		return nil, fmt.Errorf("get discount: %w", err)
	}
	return &discount, nil
}

// check maps transport failures and non-2xx statuses onto the error
// taxonomy. Transport errors include context cancellation, which is how
// abandoned requests discard their in-flight fetch.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	status := resp.StatusCode()
	if status < 400 {
		return nil
	}

	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(resp.Body(), &body)
	if body.Message == "" {
		body.Message = http.StatusText(status)
	}

	c.log.Warn().
		Int("status", status).
		Str("url", resp.Request.URL).
		Str("message", body.Message).
		Msg("Upstream call failed")

	return &Error{Status: status, Message: body.Message}
}
