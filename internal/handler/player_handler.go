package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupress/courseplayer/internal/middleware"
	"github.com/edupress/courseplayer/internal/model"
	"github.com/edupress/courseplayer/internal/response"
	"github.com/edupress/courseplayer/internal/service"
	"github.com/edupress/courseplayer/internal/upstream"
	"github.com/edupress/courseplayer/internal/validator"
)

// PlayerHandler handles the course-player surface: enrollment content,
// lesson navigation and lesson marking.
type PlayerHandler struct {
	playerService *service.PlayerService
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(playerService *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// GetContent godoc
// GET /api/v1/enrollments/:enrollment_id/content
// Returns the enrollment snapshot with the computed outline and unlock flags.
func (h *PlayerHandler) GetContent(c *gin.Context) {
	view, err := h.playerService.Content(c.Request.Context(), middleware.GetToken(c), c.Param("enrollment_id"))
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}

// GetNavigation godoc
// GET /api/v1/enrollments/:enrollment_id/lessons/:lesson_id/navigation
// Resolves previous/next lesson ids; ?by=progress follows the enrollment's
// personalized ordering instead of the canonical outline.
func (h *PlayerHandler) GetNavigation(c *gin.Context) {
	byProgress := c.Query("by") == "progress"
	nav, err := h.playerService.Navigation(
		c.Request.Context(),
		middleware.GetToken(c),
		c.Param("enrollment_id"),
		c.Param("lesson_id"),
		byProgress,
	)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, nav)
}

// MarkLesson godoc
// PUT /api/v1/enrollments/:enrollment_id/lessons/mark
// Marks a lesson completed/incomplete and returns the updated enrollment.
func (h *PlayerHandler) MarkLesson(c *gin.Context) {
	var req model.MarkLessonRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	enrollment, err := h.playerService.MarkLesson(c.Request.Context(), middleware.GetToken(c), c.Param("enrollment_id"), &req)
	if err != nil {
		failFromErr(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"enrollment": enrollment})
}

// failFromErr maps upstream and internal errors onto the response taxonomy:
// 401s redirect to login rather than becoming form errors, 404s stay 404,
// anything else lands on the generic upstream/internal display.
func failFromErr(c *gin.Context, err error) {
	var ue *upstream.Error

	switch {
	case errors.Is(err, upstream.ErrUnauthorized):
		response.Fail(c, http.StatusUnauthorized, response.ErrSessionExpired)
	case errors.Is(err, upstream.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.As(err, &ue):
		response.FailWithMessage(c, http.StatusBadGateway, response.ErrUpstreamUnavailable, ue.Message)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
