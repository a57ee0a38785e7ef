package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/services/user"
)

// RegisterAuthRoutes registers registration and login endpoints.
func RegisterAuthRoutes(r *gin.Engine, auth *handlers.AuthHandler) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", auth.RegisterHandler)
		api.POST("/login", auth.LoginHandler)
	}
}

// RegisterUserRoutes registers profile and directory endpoints.
func RegisterUserRoutes(r *gin.Engine, users *handlers.UserHandler, userService user.UserService) {
	// Doctor listing is public, like the rest of the directory browse surface.
	r.GET("/api/doctors", users.ListDoctorsHandler)

	protected := r.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(userService))
	{
		protected.GET("/users/me", users.MeHandler)
		protected.PUT("/users/profile", users.UpdateProfileHandler)
		protected.GET("/patients/waiting-list", users.WaitingListHandler)
	}
}

// RegisterAppointmentRoutes registers the reservation endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, appts *handlers.AppointmentHandler, userService user.UserService) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware(userService))
	{
		api.POST("", appts.CreateAppointmentHandler)
		api.GET("/my", appts.MyAppointmentsHandler)
		api.DELETE("/:id", appts.CancelAppointmentHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// CORSMiddleware returns the CORS policy for browser clients.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
}
