package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Parsing the :id route parameter
	"time"     // Cache TTL

	"roulette_server/internal/config" // Application configuration
	"roulette_server/internal/domain" // Importing domain models
	"roulette_server/internal/store"  // Account store
	"roulette_server/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Request struct for the admin balance override
type SetBalanceRequest struct {
	Balance float64 `json:"balance"` // New balance; absent means zero, matching the admin console
}

// AdminLoginHandler issues an admin token when the supplied credentials
// exactly match the configured administrator pair
func AdminLoginHandler(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		// Exact match against the configured credentials
		if req.Username != cfg.AdminUser || req.Password != cfg.AdminPass {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
			return
		}
		// Admin claim: id 0, configured name, admin flag set
		token, err := utils.GenerateJWT(0, cfg.AdminUser, true, cfg.JWTSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// ListUsersHandler returns all users, newest-first, without password digests
func ListUsersHandler(st store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		cacheKey := utils.UsersListCacheKey()
		var cached []domain.User
		// Try the cache first; misses fall through to the store
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"users": cached, "cached": true})
			return
		}
		// Fetch all users from the store
		users, err := st.ListUsers()
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list users")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, users, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"users": users, "cached": false})
	}
}

// userIDParam parses the :id route parameter
func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// ApproveUserHandler grants a user the approval required for wagering
func ApproveUserHandler(st store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userIDParam(c) // Parse the :id route parameter
		if !ok {
			return
		}
		// Set the approval flag; idempotent
		user, err := st.SetApproved(id)
		if err != nil {
			if err == store.ErrUserNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": id,
				"error":   err.Error(),
			}).Error("Approval failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		// Log the approval
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User approved")
		// Invalidate cached projections for the approved user
		utils.InvalidateUserCache(context.Background(), rdb, id)
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// SetBalanceHandler overwrites a user's balance with the admin-supplied amount.
// No lower bound is enforced; negative values are allowed on purpose.
func SetBalanceHandler(st store.UserStore, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := userIDParam(c) // Parse the :id route parameter
		if !ok {
			return
		}
		var req SetBalanceRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Malformed body; an absent balance field binds to zero
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid balance"})
			return
		}
		// Overwrite the balance, rounded to 2 decimal places by the store
		user, err := st.SetBalance(id, req.Balance)
		if err != nil {
			if err == store.ErrUserNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": id,
				"balance": req.Balance,
				"error":   err.Error(),
			}).Error("Balance override failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		// Log the balance override
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
			"balance":  user.Balance,
		}).Info("Balance set by admin")
		// Invalidate cached projections for the updated user
		utils.InvalidateUserCache(context.Background(), rdb, id)
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
