package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupress/courseplayer/internal/middleware"
	"github.com/edupress/courseplayer/internal/quizform"
	"github.com/edupress/courseplayer/internal/response"
	"github.com/edupress/courseplayer/internal/service"
	"github.com/edupress/courseplayer/internal/validator"
)

// QuizHandler handles quiz rendering, submission and review.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GetQuiz godoc
// GET /api/v1/enrollments/:enrollment_id/quizzes/:quiz_id
// Returns the quiz schema with blank selection state.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	view, err := h.quizService.Quiz(c.Request.Context(), middleware.GetToken(c), c.Param("enrollment_id"), c.Param("quiz_id"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// SubmitQuiz godoc
// POST /api/v1/enrollments/:enrollment_id/quizzes/:quiz_id/submit
// Validates the answer set locally, encodes it and submits upstream.
// Validation failures block the submission; nothing is sent.
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	var req service.SubmitRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	submissionID, err := h.quizService.Submit(
		c.Request.Context(),
		middleware.GetToken(c),
		c.Param("enrollment_id"),
		c.Param("quiz_id"),
		&req,
	)
	if err != nil {
		var ve *quizform.ValidationError
		if errors.As(err, &ve) {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrQuizAnswerInvalid, map[string]string{
				ve.QuestionID: ve.Reason,
			})
			return
		}
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"submission_id": submissionID})
}

// GetSubmission godoc
// GET /api/v1/enrollments/:enrollment_id/submissions/:submission_id
// Returns a stored submission with decoded selection state and the
// upstream-computed score/passed/bonus display fields.
func (h *QuizHandler) GetSubmission(c *gin.Context) {
	view, err := h.quizService.Submission(c.Request.Context(), middleware.GetToken(c), c.Param("enrollment_id"), c.Param("submission_id"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}
