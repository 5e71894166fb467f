package domain

import "time"

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                   // Primary key
	Username     string    `gorm:"unique;not null" json:"username"`        // Unique username
	PasswordHash string    `gorm:"not null" json:"-"`                      // Bcrypt digest, never serialized
	Balance      float64   `gorm:"not null;default:0" json:"balance"`      // Account balance, kept to 2 decimal places
	Approved     bool      `gorm:"not null;default:false" json:"approved"` // Admin approval gate for wagering
	CreatedAt    time.Time `json:"created_at"`                             // Timestamp of registration
}
