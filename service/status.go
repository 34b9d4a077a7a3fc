package service

import (
	"betledger/models"
)

// DeriveParlayStatus computes a parlay ticket's aggregate status from its
// legs. Rules are evaluated in strict precedence order; the first match wins:
//
//  1. any leg lost            -> lost
//  2. any leg still open      -> open
//  3. all legs push or void   -> push
//  4. any leg won             -> won
//  5. fallback                -> push
//
// A ticket is never considered settled while a leg is pending, but a single
// lost leg sinks it immediately even if other legs are still open.
// The fallback is reachable only for an empty leg set; it is a defensive
// default, not a designed outcome.
func DeriveParlayStatus(legs []*models.Leg) models.TicketStatus {
	anyOpen := false
	anyWon := false
	allNeutral := len(legs) > 0

	for _, leg := range legs {
		switch leg.Status {
		case models.LegStatusLost:
			return models.TicketStatusLost
		case models.LegStatusOpen:
			anyOpen = true
			allNeutral = false
		case models.LegStatusWon:
			anyWon = true
			allNeutral = false
		}
	}

	if anyOpen {
		return models.TicketStatusOpen
	}
	if allNeutral {
		return models.TicketStatusPush
	}
	if anyWon {
		return models.TicketStatusWon
	}
	return models.TicketStatusPush
}

// MirrorSingleStatus maps a single ticket's authoritative status onto its
// sole leg. Open and partial both leave the leg pending.
func MirrorSingleStatus(status models.TicketStatus) models.LegStatus {
	switch status {
	case models.TicketStatusWon:
		return models.LegStatusWon
	case models.TicketStatusLost:
		return models.LegStatusLost
	case models.TicketStatusPush:
		return models.LegStatusPush
	case models.TicketStatusVoid:
		return models.LegStatusVoid
	default:
		return models.LegStatusOpen
	}
}
