package api

import (
	"fmt"
	"net/http"

	"github.com/AnasGabbadi/fitness-tracker-api/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts the whole API under /api. Everything except
// registration and login sits behind the auth middleware.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	logService service.WorkoutLogService,
	progressService service.ProgressService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	workoutHandler := NewWorkoutHandler(workoutService)
	logHandler := NewWorkoutLogHandler(logService)
	progressHandler := NewProgressHandler(progressService)

	authMiddleware := AuthMiddleware(jwtSecret, authService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound,
			fmt.Sprintf("Route not found: %s %s", c.Request.Method, c.Request.URL.Path))
	})

	apiGroup := router.Group("/api")

	authGroup := apiGroup.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authMiddleware, authHandler.Me)
		authGroup.DELETE("/me", authMiddleware, authHandler.DeleteMe)
	}

	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.POST("", exerciseHandler.Create)
			exerciseGroup.GET("/:id", exerciseHandler.Get)
			exerciseGroup.PUT("/:id", exerciseHandler.Update)
			exerciseGroup.DELETE("/:id", exerciseHandler.Delete)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.List)
			workoutGroup.POST("", workoutHandler.Create)
			workoutGroup.GET("/:id", workoutHandler.Get)
			workoutGroup.PUT("/:id", workoutHandler.Update)
			workoutGroup.DELETE("/:id", workoutHandler.Delete)
		}

		logGroup := protected.Group("/logs")
		{
			logGroup.GET("", logHandler.List)
			logGroup.POST("", logHandler.Create)
			// Registered before /:id so "stats" is not parsed as an id.
			logGroup.GET("/stats/me", logHandler.Stats)
			logGroup.GET("/:id", logHandler.Get)
			logGroup.PUT("/:id", logHandler.Update)
			logGroup.DELETE("/:id", logHandler.Delete)
		}

		progressGroup := protected.Group("/progress")
		{
			progressGroup.GET("", progressHandler.List)
			progressGroup.POST("", progressHandler.Create)
			progressGroup.GET("/latest", progressHandler.Latest)
			progressGroup.DELETE("/:id", progressHandler.Delete)
			progressGroup.POST("/:id/photo", progressHandler.RequestPhotoUpload)
		}
	}
}
