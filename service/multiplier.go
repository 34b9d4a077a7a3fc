package service

import (
	"betledger/models"
)

// ResolveMultiplier combines a ticket's leg odds into one effective payout
// multiplier. For a single this is the lone leg's decimal odds; for a parlay
// it is the product over all non-neutral legs. Push and void legs contribute
// a factor of exactly 1: they are dropped from the price, not repriced.
//
// ok=false means the multiplier cannot be computed (wrong leg count or bad
// odds). Callers must leave dependent stake/to-win fields blank rather than
// treat the multiplier as zero or one.
func ResolveMultiplier(ticketType models.TicketType, legs []*models.Leg) (float64, bool) {
	switch ticketType {
	case models.TicketTypeSingle:
		if len(legs) != 1 {
			return 0, false
		}
		dec, err := AmericanToDecimal(legs[0].AmericanOdds)
		if err != nil {
			return 0, false
		}
		return dec, true

	case models.TicketTypeParlay:
		if len(legs) < 2 {
			return 0, false
		}
		multiplier := 1.0
		for _, leg := range legs {
			dec, err := AmericanToDecimal(leg.AmericanOdds)
			if err != nil {
				return 0, false
			}
			if leg.Status.IsNeutral() {
				continue
			}
			multiplier *= dec
		}
		return multiplier, true
	}
	return 0, false
}
