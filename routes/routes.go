package routes

import (
	"time"

	"mentora/handlers"
	"mentora/middleware"
	"mentora/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers plan and slot management endpoints.
// Availability and plan listings are readable by any authenticated caller;
// mutations are mentor-only.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("/mentors/:mentorID/plans", hb.Schedule.ListPlans)
		api.GET("/mentors/:mentorID/slots", hb.Schedule.ListAvailable)

		mentor := api.Group("")
		mentor.Use(middleware.RequireRole(models.RoleMentor))
		mentor.POST("/plans", hb.Schedule.CreatePlan)
		mentor.DELETE("/plans/:planID", hb.Schedule.DeactivatePlan)
		mentor.POST("/slot", hb.Schedule.CreateSlot)
		mentor.POST("/slots", hb.Schedule.CreateSlots)
		mentor.GET("/slots", hb.Schedule.ListMySlots)
	}
}

// RegisterBookingRoutes sets up the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("/reserve", middleware.RequireRole(models.RoleClient), hb.Booking.Reserve)
		api.GET("/:id", hb.Booking.Get)
		api.POST("/:id/cancel", hb.Booking.Cancel)
		api.POST("/:id/reschedule", middleware.RequireRole(models.RoleMentor), hb.Booking.Reschedule)
		api.PUT("/:id/link", middleware.RequireRole(models.RoleMentor), hb.Booking.SetJoinLink)

		admin := api.Group("")
		admin.Use(middleware.RequireRole())
		admin.POST("/:id/expire", hb.Booking.Expire)
		admin.DELETE("/:id", hb.Booking.Purge)
		admin.POST("/:id/session-status", hb.Booking.SetSessionStatus)
	}
}

// RegisterPaymentRoutes sets up the two payment confirmation channels.
// Both are unauthenticated: the sync callback arrives from the client's
// checkout page and the webhook from the gateway; each carries its own
// signature.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("/confirm", hb.Payment.ConfirmCallback)
		api.POST("/webhook", hb.Payment.Webhook)
	}
}

// RegisterChatRoutes sets up the post-session messaging endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("/bookings/:bookingID/session", hb.Chat.Open)
		api.POST("/bookings/:bookingID/session", hb.Chat.Open)
		api.POST("/sessions/:sessionID/messages", hb.Chat.PostMessage)
		api.GET("/sessions/:sessionID/messages", hb.Chat.ListMessages)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Webhook-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterScheduleRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterChatRoutes(r, hb)
}
