package store

import (
	"sync"
	"testing"

	"roulette_server/internal/domain"
	"roulette_server/internal/game"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens an in-memory SQLite database with the schema migrated
func newTestStore(t *testing.T) UserStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// A pooled :memory: connection would be a separate empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.User{}))
	return New(db)
}

func TestCreate(t *testing.T) {
	st := newTestStore(t)

	user, err := st.Create("alice", "digest")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, 0.0, user.Balance)
	require.False(t, user.Approved)
	require.False(t, user.CreatedAt.IsZero())
}

func TestCreateDuplicateUsername(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Create("alice", "digest")
	require.NoError(t, err)
	_, err = st.Create("alice", "other")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestFindNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.FindByID(42)
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = st.FindByUsername("nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetApprovedIdempotent(t *testing.T) {
	st := newTestStore(t)
	user, err := st.Create("alice", "digest")
	require.NoError(t, err)

	approved, err := st.SetApproved(user.ID)
	require.NoError(t, err)
	require.True(t, approved.Approved)

	// Approving an already-approved user succeeds and changes nothing
	again, err := st.SetApproved(user.ID)
	require.NoError(t, err)
	require.True(t, again.Approved)

	_, err = st.SetApproved(999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetBalanceRoundsAndAllowsNegative(t *testing.T) {
	st := newTestStore(t)
	user, err := st.Create("alice", "digest")
	require.NoError(t, err)

	updated, err := st.SetBalance(user.ID, 10.556)
	require.NoError(t, err)
	require.Equal(t, 10.56, updated.Balance)

	// No lower bound: the admin may set negative values
	updated, err = st.SetBalance(user.ID, -3.333)
	require.NoError(t, err)
	require.Equal(t, -3.33, updated.Balance)

	_, err = st.SetBalance(999, 10)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestApplyWager(t *testing.T) {
	st := newTestStore(t)
	user, err := st.Create("alice", "digest")
	require.NoError(t, err)
	_, err = st.SetBalance(user.ID, 100)
	require.NoError(t, err)

	// Losing wager
	updated, err := st.ApplyWager(user.ID, 30, -30)
	require.NoError(t, err)
	require.Equal(t, 70.0, updated.Balance)

	// Winning wager
	updated, err = st.ApplyWager(user.ID, 30, 30)
	require.NoError(t, err)
	require.Equal(t, 100.0, updated.Balance)
}

func TestApplyWagerGuards(t *testing.T) {
	st := newTestStore(t)
	user, err := st.Create("alice", "digest")
	require.NoError(t, err)
	_, err = st.SetBalance(user.ID, 5)
	require.NoError(t, err)

	// Stake over the balance is rejected and the balance is untouched
	_, err = st.ApplyWager(user.ID, 10, -10)
	require.ErrorIs(t, err, game.ErrInsufficientFunds)
	current, err := st.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, 5.0, current.Balance)

	// Unknown id reads as NotFound, not as insufficient funds
	_, err = st.ApplyWager(999, 1, -1)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestApplyWagerRounds(t *testing.T) {
	st := newTestStore(t)
	user, err := st.Create("alice", "digest")
	require.NoError(t, err)
	_, err = st.SetBalance(user.ID, 10.55)
	require.NoError(t, err)

	updated, err := st.ApplyWager(user.ID, 0.1, 0.1)
	require.NoError(t, err)
	require.Equal(t, 10.65, updated.Balance)
}

func TestConcurrentWagersDoNotOverdraw(t *testing.T) {
	st := newTestStore(t)
	user, err := st.Create("alice", "digest")
	require.NoError(t, err)
	_, err = st.SetBalance(user.ID, 10)
	require.NoError(t, err)

	// Two losing wagers that fit individually but not jointly
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = st.ApplyWager(user.ID, 10, -10)
		}(i)
	}
	wg.Wait()

	// Exactly one settles; the other fails the balance guard
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, game.ErrInsufficientFunds)
		}
	}
	require.Equal(t, 1, succeeded)

	final, err := st.FindByID(user.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, final.Balance)
}

func TestListUsersNewestFirst(t *testing.T) {
	st := newTestStore(t)
	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := st.Create(name, "digest")
		require.NoError(t, err)
	}

	users, err := st.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Equal(t, "carol", users[0].Username)
	require.Equal(t, "bob", users[1].Username)
	require.Equal(t, "alice", users[2].Username)
}
