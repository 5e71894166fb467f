package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"roulette_server/internal/domain" // Importing domain models
	"roulette_server/internal/store"  // Account store
	"roulette_server/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a new account awaiting admin approval
func RegisterHandler(st store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		// Attempt to create the user in the store
		user, err := st.Create(req.Username, string(hash))
		if err != nil {
			// Duplicate username is a conflict
			if err == store.ErrUsernameTaken {
				c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
				return
			}
			// Any other store failure is a server error, logged with context
			logrus.WithFields(logrus.Fields{
				"username": req.Username,
				"error":    err.Error(),
			}).Error("Registration failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		// Return the new user; balances require admin approval first
		c.JSON(http.StatusOK, gin.H{
			"user":    user,
			"message": "Registered. Await admin approval to receive balances.",
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(st store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		// Fetch user from the store
		user, err := st.FindByUsername(req.Username)
		if err != nil {
			// Unknown username, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token for the user session; never the admin flag
		token, err := utils.GenerateJWT(user.ID, user.Username, false, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		// Return the user projection and the token
		c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
	}
}

// MeHandler returns the authenticated user's own projection
func MeHandler(st store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		ctx := context.Background()   // Context for Redis operations
		cacheKey := utils.UserCacheKey(userID)
		var cached domain.User
		// Try the cache first; misses fall through to the store
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"user": cached})
			return
		}
		// Fetch user from the store
		user, err := st.FindByID(userID)
		if err != nil {
			// The admin session (id 0) has no stored row
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, user, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// PingHandler is a simple health check
func PingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}
