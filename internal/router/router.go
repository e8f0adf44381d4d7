package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/medtrack-dev/medtrack/internal/auth"
	"github.com/medtrack-dev/medtrack/internal/handlers"
	"github.com/medtrack-dev/medtrack/internal/middleware"
	"github.com/medtrack-dev/medtrack/internal/policy"
	"github.com/medtrack-dev/medtrack/internal/repositories"
	"github.com/medtrack-dev/medtrack/internal/types"
	"gorm.io/gorm"
)

func NewRouter(database *gorm.DB, tokens *auth.TokenManager) *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userStore := repositories.NewUserStore(database)
	patientStore := repositories.NewPatientStore(database)

	authHandler := handlers.NewAuthHandler(userStore, tokens)
	patientHandler := handlers.NewPatientHandler(patientStore)

	requireAuth := middleware.RequireAuth(tokens, userStore)

	r.GET("/health", handlers.HealthCheck)

	users := r.Group("/users")
	{
		users.POST("/signup", authHandler.Signup)
		users.POST("/login", authHandler.Login)
		users.GET("/me", requireAuth, authHandler.Me)
	}

	patients := r.Group("/patients", requireAuth)
	{
		patients.GET("", middleware.RequireOperation(policy.PatientList), patientHandler.List)
		patients.GET("/filter", middleware.RequireOperation(policy.PatientFilter), patientHandler.Filter)
		patients.GET("/:id", middleware.RequireOperation(policy.PatientGet), patientHandler.Get)
		patients.POST("", middleware.RequireOperation(policy.PatientCreate), patientHandler.Create)
		patients.PUT("/:id", middleware.RequireOperation(policy.PatientUpdate), patientHandler.Update)
		patients.DELETE("/:id", middleware.RequireOperation(policy.PatientDelete), patientHandler.Delete)
	}

	return r
}
