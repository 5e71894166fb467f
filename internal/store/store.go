package store

import (
	"errors" // Sentinel errors and errors.Is
	"math"   // Rounding balances to 2 decimal places
	"strings"

	"roulette_server/internal/domain" // Importing domain models
	"roulette_server/internal/game"   // Insufficient-funds sentinel shared with the engine

	"gorm.io/gorm" // GORM ORM library
)

// Store errors surfaced to the HTTP layer
var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
)

// UserStore is the synchronous account-store contract consumed by the handlers
type UserStore interface {
	Create(username, passwordHash string) (*domain.User, error)
	FindByUsername(username string) (*domain.User, error)
	FindByID(id uint) (*domain.User, error)
	SetApproved(id uint) (*domain.User, error)
	SetBalance(id uint, amount float64) (*domain.User, error)
	ApplyWager(id uint, bet, delta float64) (*domain.User, error)
	ListUsers() ([]domain.User, error)
}

// gormStore implements UserStore over a GORM connection
type gormStore struct {
	db *gorm.DB // Underlying database handle
}

// New returns a UserStore backed by the given database
func New(db *gorm.DB) UserStore {
	return &gormStore{db: db}
}

// round2 keeps balances to 2 decimal places
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// isDuplicateErr reports whether err is a unique-constraint violation
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Driver-specific messages: SQLite says UNIQUE, MySQL says Duplicate entry
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE") || strings.Contains(msg, "Duplicate")
}

// Create inserts a new user with zero balance, awaiting admin approval
func (s *gormStore) Create(username, passwordHash string) (*domain.User, error) {
	// Fast path: reject a username that is already taken
	var existing domain.User
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, ErrUsernameTaken
	}
	user := domain.User{Username: username, PasswordHash: passwordHash}
	if err := s.db.Create(&user).Error; err != nil {
		// A concurrent registration may still hit the unique index
		if isDuplicateErr(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername looks a user up by unique username
func (s *gormStore) FindByUsername(username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByID looks a user up by primary key
func (s *gormStore) FindByID(id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SetApproved marks a user as approved by the admin; idempotent
func (s *gormStore) SetApproved(id uint) (*domain.User, error) {
	// Distinguish NotFound from an already-approved row before updating
	if _, err := s.FindByID(id); err != nil {
		return nil, err
	}
	if err := s.db.Model(&domain.User{}).Where("id = ?", id).Update("approved", true).Error; err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

// SetBalance overwrites a user's balance with the rounded amount.
// No lower bound: the admin may set negative or arbitrary values.
func (s *gormStore) SetBalance(id uint, amount float64) (*domain.User, error) {
	if _, err := s.FindByID(id); err != nil {
		return nil, err
	}
	if err := s.db.Model(&domain.User{}).Where("id = ?", id).Update("balance", round2(amount)).Error; err != nil {
		return nil, err
	}
	return s.FindByID(id)
}

// ApplyWager settles a wager as a single conditional UPDATE. The database
// serializes per-row updates, so concurrent wagers that jointly overdraw the
// balance cannot both pass the balance >= bet guard.
func (s *gormStore) ApplyWager(id uint, bet, delta float64) (*domain.User, error) {
	res := s.db.Model(&domain.User{}).
		Where("id = ? AND balance >= ?", id, bet).
		Update("balance", gorm.Expr("ROUND(balance + ?, 2)", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Either the user does not exist or a concurrent wager drained the balance
		if _, err := s.FindByID(id); err != nil {
			return nil, err
		}
		return nil, game.ErrInsufficientFunds
	}
	return s.FindByID(id)
}

// ListUsers returns all users, newest-first
func (s *gormStore) ListUsers() ([]domain.User, error) {
	var users []domain.User
	if err := s.db.Order("id desc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
