package service

import (
	"time"

	"github.com/shopspring/decimal"

	"betledger/models"
)

var (
	pointFive   = decimal.New(5, -1)
	oneHundred  = decimal.NewFromInt(100)
	fiftyUnits  = decimal.NewFromInt(50)
	unitCeiling = decimal.NewFromInt(10000)
	unitPct     = decimal.New(5, -2)
)

// round2 rounds to 2 decimal places, half-up. Ties go toward positive
// infinity: round2(0.125) = 0.13, round2(-0.125) = -0.12.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Shift(2).Add(pointFive).Floor().Shift(-2)
}

// ComputeSettlement turns a ticket's stake, resolved status and legs into
// payout and profit. The rules apply in priority order:
//
//  1. manual payout override, if present
//  2. open or partial: no financials yet
//  3. push or void: stake returned, zero profit
//  4. lost: zero payout, stake lost
//  5. won: stake times the resolved multiplier
//
// Payout is rounded before profit is derived from it, so the two never
// disagree by a rounding step. An override while the ticket is still open
// records the financials but leaves SettledAt nil: the result is known but
// the ticket has not been formally closed. That state is intentional.
func ComputeSettlement(ticketType models.TicketType, stake decimal.Decimal, status models.TicketStatus, legs []*models.Leg, payoutOverride *decimal.Decimal, now time.Time) (models.Settlement, error) {
	if !stake.IsPositive() {
		return models.Settlement{}, &models.ValidationError{Field: "stake", Reason: "stake must be positive"}
	}

	if payoutOverride != nil {
		payout := round2(*payoutOverride)
		profit := round2(payout.Sub(stake))
		s := models.Settlement{
			Payout: decimal.NewNullDecimal(payout),
			Profit: decimal.NewNullDecimal(profit),
		}
		if status != models.TicketStatusOpen {
			ts := now
			s.SettledAt = &ts
		}
		return s, nil
	}

	switch status {
	case models.TicketStatusOpen, models.TicketStatusPartial:
		return models.Settlement{}, nil

	case models.TicketStatusPush, models.TicketStatusVoid:
		ts := now
		return models.Settlement{
			Payout:    decimal.NewNullDecimal(round2(stake)),
			Profit:    decimal.NewNullDecimal(decimal.Zero),
			SettledAt: &ts,
		}, nil

	case models.TicketStatusLost:
		ts := now
		return models.Settlement{
			Payout:    decimal.NewNullDecimal(decimal.Zero),
			Profit:    decimal.NewNullDecimal(round2(stake.Neg())),
			SettledAt: &ts,
		}, nil

	case models.TicketStatusWon:
		multiplier, ok := ResolveMultiplier(ticketType, legs)
		if !ok {
			return models.Settlement{}, &models.ValidationError{Field: "legs", Reason: "cannot resolve payout multiplier"}
		}
		payout := round2(stake.Mul(decimal.NewFromFloat(multiplier)))
		profit := round2(payout.Sub(stake))
		ts := now
		return models.Settlement{
			Payout:    decimal.NewNullDecimal(payout),
			Profit:    decimal.NewNullDecimal(profit),
			SettledAt: &ts,
		}, nil
	}

	return models.Settlement{}, &models.ValidationError{Field: "status", Reason: "unknown ticket status"}
}
