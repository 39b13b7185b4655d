package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/edupress/courseplayer/internal/config"
	"github.com/edupress/courseplayer/internal/handler"
	"github.com/edupress/courseplayer/internal/middleware"
	"github.com/edupress/courseplayer/internal/response"
	"github.com/edupress/courseplayer/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Player   *handler.PlayerHandler
	Quiz     *handler.QuizHandler
	Checkout *handler.CheckoutHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Player Group (Student JWT) ────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireStudentJWT(authService))
	{
		enrollments := api.Group("/enrollments/:enrollment_id")
		{
			enrollments.GET("/content", handlers.Player.GetContent)
			enrollments.GET("/lessons/:lesson_id/navigation", handlers.Player.GetNavigation)
			enrollments.PUT("/lessons/mark", handlers.Player.MarkLesson)

			enrollments.GET("/quizzes/:quiz_id", handlers.Quiz.GetQuiz)
			enrollments.POST("/quizzes/:quiz_id/submit", handlers.Quiz.SubmitQuiz)
			enrollments.GET("/submissions/:submission_id", handlers.Quiz.GetSubmission)

			enrollments.PUT("/change-course", handlers.Checkout.ChangeCourse)
		}

		api.GET("/checkout/discounts/:code", handlers.Checkout.GetDiscountQuote)
	}

	return router
}
