package api

import (
	"roulette_server/internal/config"     // Application configuration
	"roulette_server/internal/game"       // Wager engine
	"roulette_server/internal/middleware" // Auth middleware
	"roulette_server/internal/store"      // Account store

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// NewRouter wires all routes onto a gin engine. rdb may be nil, which
// disables the read-side cache.
func NewRouter(cfg *config.Config, st store.UserStore, wheel *game.Wheel, rdb *redis.Client) *gin.Engine {
	r := gin.Default() // Gin router instance

	apiGroup := r.Group("/api")

	// Public routes
	apiGroup.POST("/register", RegisterHandler(st))          // Registration endpoint
	apiGroup.POST("/login", LoginHandler(st, cfg.JWTSecret)) // Login endpoint
	apiGroup.POST("/admin/login", AdminLoginHandler(cfg))    // Admin login endpoint
	apiGroup.GET("/ping", PingHandler())                     // Health check endpoint

	// Authenticated routes (any valid token)
	authGroup := apiGroup.Group("")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.GET("/me", MeHandler(st, rdb))             // Own profile endpoint
	authGroup.POST("/spin", SpinHandler(st, wheel, rdb)) // Wager endpoint

	// Admin routes (protected, admin only)
	adminGroup := apiGroup.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware())
	adminGroup.GET("/users", ListUsersHandler(st, rdb))                // List users endpoint
	adminGroup.POST("/users/:id/approve", ApproveUserHandler(st, rdb)) // Approve user endpoint
	adminGroup.POST("/users/:id/balance", SetBalanceHandler(st, rdb))  // Set balance endpoint

	return r
}
