package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedWheel returns a wheel that always draws the given pocket
func fixedWheel(n int) *Wheel {
	return NewWheelWithSource(func() int { return n })
}

func TestColorOf(t *testing.T) {
	require.Equal(t, ColorGreen, ColorOf(0))

	reds := []int{1, 3, 5, 7, 9, 12, 14, 16, 18, 19, 21, 23, 25, 27, 30, 32, 34, 36}
	redSet := make(map[int]bool, len(reds))
	for _, n := range reds {
		redSet[n] = true
		require.Equal(t, ColorRed, ColorOf(n), "pocket %d", n)
	}
	// Every other non-zero pocket is black
	for n := 1; n <= 36; n++ {
		if !redSet[n] {
			require.Equal(t, ColorBlack, ColorOf(n), "pocket %d", n)
		}
	}
}

func TestValidateWager(t *testing.T) {
	require.NoError(t, ValidateWager(10, ColorRed))
	require.NoError(t, ValidateWager(0.01, ColorBlack))

	require.ErrorIs(t, ValidateWager(0, ColorRed), ErrInvalidBet)
	require.ErrorIs(t, ValidateWager(-5, ColorBlack), ErrInvalidBet)
	require.ErrorIs(t, ValidateWager(10, "green"), ErrInvalidChoice)
	require.ErrorIs(t, ValidateWager(10, ""), ErrInvalidChoice)
	require.ErrorIs(t, ValidateWager(10, "RED"), ErrInvalidChoice)
}

func TestSpinWin(t *testing.T) {
	res, err := fixedWheel(1).Spin(10, ColorRed, 50) // Pocket 1 is red
	require.NoError(t, err)
	require.Equal(t, 1, res.Number)
	require.Equal(t, ColorRed, res.Color)
	require.True(t, res.Won)
	require.Equal(t, 10.0, res.Bet)
	require.Equal(t, 20.0, res.Payout) // Stake returned plus stake won
	require.Equal(t, 10.0, res.Delta())
}

func TestSpinLoss(t *testing.T) {
	res, err := fixedWheel(2).Spin(10, ColorRed, 50) // Pocket 2 is black
	require.NoError(t, err)
	require.Equal(t, ColorBlack, res.Color)
	require.False(t, res.Won)
	require.Equal(t, 0.0, res.Payout)
	require.Equal(t, -10.0, res.Delta())
}

func TestSpinZeroAlwaysLoses(t *testing.T) {
	// Green never matches a red/black choice
	for _, choice := range []string{ColorRed, ColorBlack} {
		res, err := fixedWheel(0).Spin(5, choice, 100)
		require.NoError(t, err)
		require.Equal(t, 0, res.Number)
		require.Equal(t, ColorGreen, res.Color)
		require.False(t, res.Won)
		require.Equal(t, -5.0, res.Delta())
	}
}

func TestSpinInsufficientFunds(t *testing.T) {
	_, err := fixedWheel(1).Spin(100, ColorRed, 99.99)
	require.ErrorIs(t, err, ErrInsufficientFunds)

	// A stake equal to the balance is allowed
	res, err := fixedWheel(1).Spin(100, ColorRed, 100)
	require.NoError(t, err)
	require.True(t, res.Won)
}

func TestSpinValidatesBeforeDrawing(t *testing.T) {
	drawn := false
	w := NewWheelWithSource(func() int { drawn = true; return 1 })
	_, err := w.Spin(-1, ColorRed, 100)
	require.ErrorIs(t, err, ErrInvalidBet)
	require.False(t, drawn)
}

func TestLiveWheelDrawsInRange(t *testing.T) {
	w := NewWheel()
	for i := 0; i < 1000; i++ {
		res, err := w.Spin(1, ColorRed, 1000)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.Number, 0)
		require.LessOrEqual(t, res.Number, 36)
		require.Equal(t, ColorOf(res.Number), res.Color)
	}
}
