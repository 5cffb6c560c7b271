package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/altarmaker/altarmaker-api/internal/api/handler"
	"github.com/altarmaker/altarmaker-api/internal/api/middleware"
	"github.com/altarmaker/altarmaker-api/internal/core/ports"
	"github.com/altarmaker/altarmaker-api/internal/core/service"
	mongorepo "github.com/altarmaker/altarmaker-api/internal/infrastructure/db/mongo"
	redisrepo "github.com/altarmaker/altarmaker-api/internal/infrastructure/db/redis"
)

// Deps carries the externally constructed collaborators the router wires
// together. Nothing here is a process-wide singleton; lifecycle is owned by
// the caller.
type Deps struct {
	Mongo     *mongo.Database
	Redis     *redis.Client
	Mailer    ports.Mailer
	SecretKey string
	Logger    zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("altarmaker"))

	// --- Repositories ---
	users := mongorepo.NewUserRepository(deps.Mongo)
	snapshots := mongorepo.NewWallDesignRepository(deps.Mongo)
	designSessions := mongorepo.NewDesignSessionRepository(deps.Mongo)
	feedback := mongorepo.NewFeedbackRepository(deps.Mongo)

	// --- Services ---
	var throttle ports.MailThrottle
	if deps.Redis != nil {
		throttle = redisrepo.NewMailThrottle(deps.Redis)
	}
	tokens := service.NewTokenService(deps.SecretKey, 0)
	authService := service.NewAuthService(users, tokens, deps.Mailer, throttle, deps.Logger)
	designService := service.NewDesignService(snapshots, designSessions, deps.Logger)
	adminService := service.NewAdminService(users, designSessions, deps.Logger)
	feedbackService := service.NewFeedbackService(feedback, deps.Logger)

	// --- Handlers ---
	sessions := middleware.NewSessionManager(deps.SecretKey)
	authHandler := handler.NewAuthHandler(authService, sessions)
	designHandler := handler.NewDesignHandler(designService)
	adminHandler := handler.NewAdminHandler(adminService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	healthHandler := handler.NewHealthHandler(deps.Mongo, deps.Redis)

	requireAuth := middleware.RequireAuth(sessions)
	requireAdmin := middleware.RequireAdmin()

	// --- Routes ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/api/health", healthHandler.Check)

	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.GET("/verify-email", authHandler.VerifyEmail)
	auth.POST("/resend-verification", authHandler.ResendVerification)
	auth.POST("/login", authHandler.Login)
	// Logout is deliberately unauthenticated: clearing an absent session
	// must succeed, so a stale client can always log out.
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/status", authHandler.Status)

	designs := e.Group("/api/designs", requireAuth)
	designs.GET("/wall-designs", designHandler.GetWallDesigns)
	designs.POST("/wall-designs", designHandler.SaveWallDesigns)

	sess := e.Group("/api/sessions", requireAuth)
	sess.GET("", designHandler.ListSessions)
	sess.POST("", designHandler.CreateSession)
	sess.GET("/:id", designHandler.GetSession)
	sess.PUT("/:id", designHandler.UpdateSession)
	sess.DELETE("/:id", designHandler.DeleteSession)

	admin := e.Group("/api/admin", requireAuth, requireAdmin)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateAdmin)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.PUT("/users/:id/promote", adminHandler.Promote)
	admin.PUT("/users/:id/demote", adminHandler.Demote)
	admin.GET("/stats", adminHandler.Stats)

	e.GET("/api/feedback", feedbackHandler.List)
	e.POST("/api/feedback", feedbackHandler.Submit)

	return e
}
