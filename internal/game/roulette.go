package game

import (
	"errors"    // Sentinel errors for wager validation
	"math/rand" // Process-wide random source
)

// Wheel colors
const (
	ColorGreen = "green" // Zero pocket
	ColorRed   = "red"   // Red pockets
	ColorBlack = "black" // Black pockets
)

// Validation errors surfaced to the HTTP layer as 400 responses
var (
	ErrInvalidBet        = errors.New("invalid bet")
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

// redNumbers is the fixed set of red pockets on a European wheel
var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Result describes a single settled spin
type Result struct {
	Number int     `json:"number"` // Drawn pocket, 0-36
	Color  string  `json:"color"`  // Pocket color: green, red or black
	Won    bool    `json:"won"`    // Whether the bettor's choice matched
	Bet    float64 `json:"bet"`    // Stake placed
	Payout float64 `json:"payout"` // Gross payout (2x bet on win, 0 on loss)
}

// Delta returns the signed balance change of the spin: +bet on win, -bet on loss
func (r *Result) Delta() float64 {
	if r.Won {
		return r.Bet // Stake returned plus stake won
	}
	return -r.Bet // Stake lost
}

// ColorOf maps a pocket number to its color
func ColorOf(n int) string {
	if n == 0 {
		return ColorGreen // Zero is green, never matches a red/black choice
	}
	if redNumbers[n] {
		return ColorRed
	}
	return ColorBlack
}

// ValidateWager checks the stake and color choice of a wager
func ValidateWager(bet float64, choice string) error {
	// Stake must be a positive number
	if bet <= 0 {
		return ErrInvalidBet
	}
	// Only even-money red/black bets are offered
	if choice != ColorRed && choice != ColorBlack {
		return ErrInvalidChoice
	}
	return nil
}

// Wheel draws spin outcomes from an injected integer source.
// It holds no state between spins; every draw is independent.
type Wheel struct {
	draw func() int // Returns a pocket number in [0,36]
}

// NewWheel returns a wheel backed by the process-wide random source
func NewWheel() *Wheel {
	return &Wheel{draw: func() int { return rand.Intn(37) }}
}

// NewWheelWithSource returns a wheel with a custom draw function (deterministic in tests)
func NewWheelWithSource(draw func() int) *Wheel {
	return &Wheel{draw: draw}
}

// Spin validates the wager against the supplied balance, draws an outcome and
// settles it. The caller applies the resulting delta to durable state.
func (w *Wheel) Spin(bet float64, choice string, balance float64) (*Result, error) {
	// Validate stake and choice
	if err := ValidateWager(bet, choice); err != nil {
		return nil, err
	}
	// Stake may not exceed the current balance
	if bet > balance {
		return nil, ErrInsufficientFunds
	}
	number := w.draw()       // Draw a pocket uniformly from [0,36]
	color := ColorOf(number) // Map the pocket to its color
	result := &Result{
		Number: number,
		Color:  color,
		Bet:    bet,
	}
	// Win iff the drawn color matches the choice; green always loses
	if color == choice {
		result.Won = true
		result.Payout = bet * 2 // Stake returned plus stake won
	}
	return result, nil
}
