package service

import (
	"math"

	"betledger/models"
)

// AmericanToDecimal converts an American odds value to a decimal payout
// multiplier: total return per unit staked. +150 pays 2.5, -110 pays ~1.909.
// Zero or non-finite input is rejected with models.ErrInvalidOdds.
func AmericanToDecimal(odds float64) (float64, error) {
	if odds == 0 || math.IsNaN(odds) || math.IsInf(odds, 0) {
		return 0, models.ErrInvalidOdds
	}
	if odds > 0 {
		return 1 + odds/100, nil
	}
	return 1 + 100/math.Abs(odds), nil
}
