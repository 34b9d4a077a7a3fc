package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is the financial result of settling a ticket
type Settlement struct {
	Payout    decimal.NullDecimal
	Profit    decimal.NullDecimal
	SettledAt *time.Time
}

// RangePreset names a supported date-range shortcut
type RangePreset string

const (
	RangePresetLast7     RangePreset = "last7"
	RangePresetLast30    RangePreset = "last30"
	RangePresetMTD       RangePreset = "mtd"
	RangePresetPrevMonth RangePreset = "prev_month"
	RangePresetAllTime   RangePreset = "all"
	RangePresetCustom    RangePreset = "custom"
)

// DateRange is an inclusive-by-calendar-day window. A zero Start or End
// leaves that side unbounded; the zero value means "all time".
// End is stored as the exclusive local-midnight instant of the day after
// the last included date.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Unbounded reports whether the range covers all time
func (r DateRange) Unbounded() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether ts falls inside the range
func (r DateRange) Contains(ts time.Time) bool {
	if !r.Start.IsZero() && ts.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && !ts.Before(r.End) {
		return false
	}
	return true
}

// PeriodFilter selects the ticket subset a dashboard view aggregates over.
// League and statuses empty mean "no filter on that dimension".
type PeriodFilter struct {
	League   string
	Statuses []TicketStatus
	Range    DateRange
}

// MatchesLeague reports whether a ticket passes the league filter
func (f PeriodFilter) MatchesLeague(t *Ticket) bool {
	return f.League == "" || f.League == t.League
}

// MatchesStatus reports whether a ticket passes the status filter
func (f PeriodFilter) MatchesStatus(t *Ticket) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if t.Status == s {
			return true
		}
	}
	return false
}

// BankrollPoint is one day on the bankroll chart
type BankrollPoint struct {
	Date             time.Time
	Bankroll         decimal.Decimal
	CumulativeProfit decimal.Decimal
}

// PeriodSummary aggregates the filtered ticket set for the dashboard
type PeriodSummary struct {
	TotalProfit decimal.Decimal
	TotalBet    decimal.Decimal
	ROI         decimal.Decimal
	Wins        int
	Losses      int
	Pushes      int
}

// PeriodStats is the full dashboard payload for one filter
type PeriodStats struct {
	Summary         PeriodSummary
	Series          []BankrollPoint
	CurrentBankroll decimal.Decimal
}
