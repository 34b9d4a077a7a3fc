package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betledger/models"
)

func settledTicket(league string, placedAt time.Time, status models.TicketStatus, stake, profit string) *models.Ticket {
	t := &models.Ticket{
		ID:         "t-" + placedAt.Format("20060102") + "-" + league,
		TicketType: models.TicketTypeSingle,
		League:     league,
		Stake:      dec(stake),
		Status:     status,
		PlacedAt:   placedAt,
	}
	if status.IsTerminal() {
		p := dec(profit)
		t.Profit = decimal.NewNullDecimal(p)
		t.Payout = decimal.NewNullDecimal(t.Stake.Add(p))
		settled := placedAt.Add(6 * time.Hour)
		t.SettledAt = &settled
	}
	return t
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, chicago)
}

func TestBuildBankrollSeries(t *testing.T) {
	tickets := []*models.Ticket{
		// Before the range: rolls into the baseline
		settledTicket("NBA", day(2025, 5, 20), models.TicketStatusWon, "100", "90.91"),
		settledTicket("NBA", day(2025, 5, 25), models.TicketStatusLost, "50", "-50"),
		// Inside the range
		settledTicket("NBA", day(2025, 6, 2), models.TicketStatusWon, "100", "150"),
		settledTicket("NBA", day(2025, 6, 2), models.TicketStatusLost, "100", "-100"),
		settledTicket("NBA", day(2025, 6, 4), models.TicketStatusLost, "25", "-25"),
		// Open ticket contributes zero
		settledTicket("NBA", day(2025, 6, 3), models.TicketStatusOpen, "40", ""),
	}

	filter := models.PeriodFilter{
		Range: models.DateRange{Start: day(2025, 6, 1), End: day(2025, 6, 6)},
	}
	series := BuildBankrollSeries(tickets, dec("1000"), filter, chicago)

	require.Len(t, series, 5, "one point per day in range, no gaps")

	// Baseline: 1000 + 90.91 - 50 = 1040.91
	assert.Equal(t, "1040.91", series[0].Bankroll.String(), "June 1, no tickets")
	assert.Equal(t, "0", series[0].CumulativeProfit.String())

	// June 2 nets +50
	assert.Equal(t, "1090.91", series[1].Bankroll.String())
	assert.Equal(t, "50", series[1].CumulativeProfit.String())

	// June 3 has only an open ticket
	assert.Equal(t, "1090.91", series[2].Bankroll.String())

	// June 4 drops 25
	assert.Equal(t, "1065.91", series[3].Bankroll.String())
	assert.Equal(t, "25", series[3].CumulativeProfit.String())

	// June 5 unchanged
	assert.Equal(t, "1065.91", series[4].Bankroll.String())
}

func TestBuildBankrollSeries_LeagueFilter(t *testing.T) {
	tickets := []*models.Ticket{
		settledTicket("NBA", day(2025, 6, 2), models.TicketStatusWon, "100", "100"),
		settledTicket("NFL", day(2025, 6, 2), models.TicketStatusLost, "100", "-100"),
	}
	filter := models.PeriodFilter{
		League: "NBA",
		Range:  models.DateRange{Start: day(2025, 6, 1), End: day(2025, 6, 3)},
	}
	series := BuildBankrollSeries(tickets, dec("500"), filter, chicago)
	require.Len(t, series, 2)
	assert.Equal(t, "600", series[1].Bankroll.String(), "NFL loss excluded")
}

func TestBuildBankrollSeries_AllTime(t *testing.T) {
	tickets := []*models.Ticket{
		settledTicket("NBA", day(2025, 6, 2), models.TicketStatusWon, "100", "100"),
		settledTicket("NBA", day(2025, 6, 5), models.TicketStatusLost, "100", "-40"),
	}
	series := BuildBankrollSeries(tickets, dec("0"), models.PeriodFilter{}, chicago)

	require.Len(t, series, 4, "walks from first ticket day through last")
	assert.True(t, series[0].Date.Equal(day(2025, 6, 2)))
	assert.True(t, series[3].Date.Equal(day(2025, 6, 5)))
	assert.Equal(t, "60", series[3].Bankroll.String())
}

func TestBuildBankrollSeries_NoTickets(t *testing.T) {
	assert.Nil(t, BuildBankrollSeries(nil, dec("100"), models.PeriodFilter{}, chicago))
}

func TestSummarizePeriod(t *testing.T) {
	tickets := []*models.Ticket{
		settledTicket("NBA", day(2025, 6, 2), models.TicketStatusWon, "100", "90.91"),
		settledTicket("NBA", day(2025, 6, 3), models.TicketStatusLost, "50", "-50"),
		settledTicket("NBA", day(2025, 6, 4), models.TicketStatusPush, "25", "0"),
		settledTicket("NBA", day(2025, 6, 4), models.TicketStatusVoid, "25", "0"),
		settledTicket("NBA", day(2025, 6, 5), models.TicketStatusOpen, "60", ""),
	}

	summary := SummarizePeriod(tickets, models.PeriodFilter{})

	assert.Equal(t, "40.91", summary.TotalProfit.String())
	assert.Equal(t, "260", summary.TotalBet.String())
	// 40.91 / 260 * 100, rounded to 2dp
	assert.Equal(t, "15.73", summary.ROI.String())
	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 1, summary.Losses)
	assert.Equal(t, 2, summary.Pushes, "push and void count together")
}

func TestSummarizePeriod_EmptySetHasZeroROI(t *testing.T) {
	summary := SummarizePeriod(nil, models.PeriodFilter{})
	assert.True(t, summary.ROI.IsZero())
	assert.True(t, summary.TotalBet.IsZero())
}

func TestSummarizePeriod_StatusFilter(t *testing.T) {
	tickets := []*models.Ticket{
		settledTicket("NBA", day(2025, 6, 2), models.TicketStatusWon, "100", "90.91"),
		settledTicket("NBA", day(2025, 6, 3), models.TicketStatusLost, "50", "-50"),
	}
	summary := SummarizePeriod(tickets, models.PeriodFilter{
		Statuses: []models.TicketStatus{models.TicketStatusWon},
	})
	assert.Equal(t, 1, summary.Wins)
	assert.Equal(t, 0, summary.Losses)
	assert.Equal(t, "100", summary.TotalBet.String())
}

// The all-time bankroll ignores every filter: it must equal starting
// bankroll plus the sum of all settled profit no matter what the dashboard
// is currently showing.
func TestCurrentBankroll_FilterIndependent(t *testing.T) {
	tickets := []*models.Ticket{
		settledTicket("NBA", day(2025, 5, 20), models.TicketStatusWon, "100", "90.91"),
		settledTicket("NFL", day(2025, 6, 2), models.TicketStatusLost, "50", "-50"),
		settledTicket("MLB", day(2025, 6, 10), models.TicketStatusPush, "25", "0"),
		settledTicket("NBA", day(2025, 6, 12), models.TicketStatusOpen, "75", ""),
	}

	bankroll := CurrentBankroll(tickets, dec("1000"))
	assert.Equal(t, "1040.91", bankroll.String())

	// Expected identity: starting + sum of settled profit
	expected := dec("1000")
	for _, ticket := range tickets {
		expected = expected.Add(ticket.NetProfit())
	}
	assert.True(t, bankroll.Equal(expected))
}

func TestBankrollBefore(t *testing.T) {
	tickets := []*models.Ticket{
		settledTicket("NBA", day(2025, 5, 20), models.TicketStatusWon, "100", "500"),
		settledTicket("NBA", day(2025, 6, 2), models.TicketStatusWon, "100", "900"),
	}
	cutoff := day(2025, 6, 1)
	bankroll := BankrollBefore(tickets, dec("1000"), cutoff)
	assert.Equal(t, "1500", bankroll.String(), "June ticket is after the cutoff")
}
