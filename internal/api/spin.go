package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"roulette_server/internal/game"  // Wager engine
	"roulette_server/internal/store" // Account store
	"roulette_server/internal/utils" // Cache invalidation

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// SpinRequest represents a single-round wager
type SpinRequest struct {
	Bet    float64 `json:"bet"`    // Stake; must be positive, validated by the engine
	Choice string  `json:"choice"` // Color choice: red or black
}

// SpinHandler settles one roulette wager for an approved user
func SpinHandler(st store.UserStore, wheel *game.Wheel, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userID") // Set by the JWT middleware
		var req SpinRequest           // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// Malformed body or non-numeric bet
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bet"})
			return
		}
		// Validate stake and choice before touching the store
		if err := game.ValidateWager(req.Bet, req.Choice); err != nil {
			if err == game.ErrInvalidChoice {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid choice"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bet"})
			return
		}
		// Fetch the bettor's current state
		user, err := st.FindByID(userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Only admin-approved accounts may wager
		if !user.Approved {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account not approved by admin"})
			return
		}
		// Draw and settle against the balance just read
		result, err := wheel.Spin(req.Bet, req.Choice, user.Balance)
		if err != nil {
			// Stake exceeds the balance
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
			return
		}
		// Apply the delta under the store's per-row guard. A concurrent wager
		// may have drained the balance since the read above; the guard makes
		// the overdrawn spin fail instead of losing an update.
		updated, err := st.ApplyWager(userID, req.Bet, result.Delta())
		if err != nil {
			if err == game.ErrInsufficientFunds {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient balance"})
				return
			}
			if err == store.ErrUserNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			// Store failure: log with context, return generic server error
			logrus.WithFields(logrus.Fields{
				"user_id": userID,
				"bet":     req.Bet,
				"choice":  req.Choice,
				"error":   err.Error(),
			}).Error("Spin settlement failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
			return
		}
		// Log the settled wager
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"bet":     req.Bet,
			"choice":  req.Choice,
			"number":  result.Number,
			"color":   result.Color,
			"won":     result.Won,
			"balance": updated.Balance,
		}).Info("Spin settled")
		// Invalidate cached projections touched by the balance write
		utils.InvalidateUserCache(context.Background(), rdb, userID)
		// Return the outcome and the new balance
		c.JSON(http.StatusOK, gin.H{"result": result, "balance": updated.Balance})
	}
}
