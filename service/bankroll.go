package service

import (
	"time"

	"github.com/shopspring/decimal"

	"betledger/models"
)

const dayKeyFormat = "2006-01-02"

// DayKey returns the local calendar date of ts as a grouping key. Grouping
// is by local date, not UTC date; the two diverge near midnight.
func DayKey(ts time.Time, loc *time.Location) string {
	return ts.In(loc).Format(dayKeyFormat)
}

// BuildBankrollSeries computes the daily bankroll chart for one filter.
// Tickets placed strictly before the range start roll into the baseline
// bankroll; tickets inside the range are grouped by local calendar day and
// applied in ascending day order. The series is continuous: every day in
// the range gets a point, including days with no tickets. Unsettled tickets
// contribute zero profit.
//
// For an unbounded range the walk spans from the first league-matching
// ticket's day through the last.
func BuildBankrollSeries(tickets []*models.Ticket, startingBankroll decimal.Decimal, filter models.PeriodFilter, loc *time.Location) []models.BankrollPoint {
	r := filter.Range
	baseline := startingBankroll
	perDay := make(map[string]decimal.Decimal)
	var firstDay, lastDay time.Time

	for _, t := range tickets {
		if !filter.MatchesLeague(t) {
			continue
		}
		if !r.Start.IsZero() && t.PlacedAt.Before(r.Start) {
			baseline = baseline.Add(t.NetProfit())
			continue
		}
		if !r.End.IsZero() && !t.PlacedAt.Before(r.End) {
			continue
		}
		day := StartOfDay(t.PlacedAt, loc)
		key := day.Format(dayKeyFormat)
		perDay[key] = perDay[key].Add(t.NetProfit())
		if firstDay.IsZero() || day.Before(firstDay) {
			firstDay = day
		}
		if lastDay.IsZero() || day.After(lastDay) {
			lastDay = day
		}
	}

	walkStart := r.Start
	if walkStart.IsZero() {
		walkStart = firstDay
	}
	walkEnd := r.End
	if walkEnd.IsZero() {
		if lastDay.IsZero() {
			return nil
		}
		walkEnd = lastDay.AddDate(0, 0, 1)
	}
	if walkStart.IsZero() || !walkStart.Before(walkEnd) {
		return nil
	}

	bankroll := baseline
	cumulative := decimal.Zero
	var series []models.BankrollPoint
	for day := walkStart; day.Before(walkEnd); day = day.AddDate(0, 0, 1) {
		if profit, ok := perDay[day.Format(dayKeyFormat)]; ok {
			bankroll = bankroll.Add(profit)
			cumulative = cumulative.Add(profit)
		}
		series = append(series, models.BankrollPoint{
			Date:             day,
			Bankroll:         bankroll,
			CumulativeProfit: cumulative,
		})
	}
	return series
}

// SummarizePeriod aggregates the in-range, filtered ticket set: total
// profit, total staked, ROI and the win/loss/push record. Push and void
// tickets count together in the record. ROI is zero when nothing was
// staked; there is no division by zero.
func SummarizePeriod(tickets []*models.Ticket, filter models.PeriodFilter) models.PeriodSummary {
	summary := models.PeriodSummary{
		TotalProfit: decimal.Zero,
		TotalBet:    decimal.Zero,
		ROI:         decimal.Zero,
	}

	for _, t := range tickets {
		if !filter.MatchesLeague(t) || !filter.MatchesStatus(t) {
			continue
		}
		if !filter.Range.Contains(t.PlacedAt) {
			continue
		}
		summary.TotalBet = summary.TotalBet.Add(t.Stake)
		summary.TotalProfit = summary.TotalProfit.Add(t.NetProfit())
		switch t.Status {
		case models.TicketStatusWon:
			summary.Wins++
		case models.TicketStatusLost:
			summary.Losses++
		case models.TicketStatusPush, models.TicketStatusVoid:
			summary.Pushes++
		}
	}

	if summary.TotalBet.IsPositive() {
		summary.ROI = summary.TotalProfit.Div(summary.TotalBet).Mul(oneHundred).Round(2)
	}
	return summary
}

// CurrentBankroll is the all-time bankroll: starting bankroll plus every
// settled ticket's profit, regardless of any active league or date filter.
// It answers a different question than the range series baseline and the
// two must never be conflated.
func CurrentBankroll(tickets []*models.Ticket, startingBankroll decimal.Decimal) decimal.Decimal {
	bankroll := startingBankroll
	for _, t := range tickets {
		bankroll = bankroll.Add(t.NetProfit())
	}
	return bankroll
}

// BankrollBefore sums starting bankroll plus the profit of every ticket
// placed strictly before cutoff. The unit-size rule uses it with the
// current month's first midnight as the cutoff.
func BankrollBefore(tickets []*models.Ticket, startingBankroll decimal.Decimal, cutoff time.Time) decimal.Decimal {
	bankroll := startingBankroll
	for _, t := range tickets {
		if t.PlacedAt.Before(cutoff) {
			bankroll = bankroll.Add(t.NetProfit())
		}
	}
	return bankroll
}
