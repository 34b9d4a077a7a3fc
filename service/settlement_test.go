package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betledger/models"
)

var settleTime = time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"190.909090909", "190.91"},
		{"95.4545", "95.45"},
		{"0.125", "0.13"},
		{"-0.125", "-0.12"},
		{"0.005", "0.01"},
		{"100", "100"},
		{"-100.005", "-100"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, round2(dec(tt.in)).String(), "round2(%s)", tt.in)
	}
}

func TestComputeSettlement_SingleWin(t *testing.T) {
	legs := []*models.Leg{leg(-110, models.LegStatusWon)}
	s, err := ComputeSettlement(models.TicketTypeSingle, dec("100"), models.TicketStatusWon, legs, nil, settleTime)
	require.NoError(t, err)

	require.True(t, s.Payout.Valid)
	require.True(t, s.Profit.Valid)
	assert.Equal(t, "190.91", s.Payout.Decimal.String())
	assert.Equal(t, "90.91", s.Profit.Decimal.String())
	require.NotNil(t, s.SettledAt)
	assert.Equal(t, settleTime, *s.SettledAt)
}

func TestComputeSettlement_ParlayWithPushLeg(t *testing.T) {
	legs := []*models.Leg{
		leg(-110, models.LegStatusWon),
		leg(120, models.LegStatusPush),
	}
	status := DeriveParlayStatus(legs)
	assert.Equal(t, models.TicketStatusWon, status)

	s, err := ComputeSettlement(models.TicketTypeParlay, dec("50"), status, legs, nil, settleTime)
	require.NoError(t, err)
	assert.Equal(t, "95.45", s.Payout.Decimal.String())
	assert.Equal(t, "45.45", s.Profit.Decimal.String())
}

func TestComputeSettlement_PushReturnsStake(t *testing.T) {
	for _, stake := range []string{"1", "25.50", "100", "999.99"} {
		for _, status := range []models.TicketStatus{models.TicketStatusPush, models.TicketStatusVoid} {
			legs := []*models.Leg{leg(-110, models.LegStatusPush)}
			s, err := ComputeSettlement(models.TicketTypeSingle, dec(stake), status, legs, nil, settleTime)
			require.NoError(t, err)
			assert.True(t, s.Payout.Decimal.Equal(dec(stake)), "stake %s status %s", stake, status)
			assert.True(t, s.Profit.Decimal.IsZero(), "stake %s status %s", stake, status)
		}
	}
}

func TestComputeSettlement_Lost(t *testing.T) {
	legs := []*models.Leg{leg(-110, models.LegStatusLost)}
	s, err := ComputeSettlement(models.TicketTypeSingle, dec("75.25"), models.TicketStatusLost, legs, nil, settleTime)
	require.NoError(t, err)
	assert.Equal(t, "0", s.Payout.Decimal.String())
	assert.Equal(t, "-75.25", s.Profit.Decimal.String())
	require.NotNil(t, s.SettledAt)
}

func TestComputeSettlement_OpenHasNoFinancials(t *testing.T) {
	legs := []*models.Leg{leg(-110, models.LegStatusOpen)}
	for _, status := range []models.TicketStatus{models.TicketStatusOpen, models.TicketStatusPartial} {
		s, err := ComputeSettlement(models.TicketTypeSingle, dec("100"), status, legs, nil, settleTime)
		require.NoError(t, err)
		assert.False(t, s.Payout.Valid)
		assert.False(t, s.Profit.Valid)
		assert.Nil(t, s.SettledAt)
	}
}

func TestComputeSettlement_ManualOverride(t *testing.T) {
	legs := []*models.Leg{leg(-110, models.LegStatusWon)}
	override := dec("250.004")

	s, err := ComputeSettlement(models.TicketTypeSingle, dec("100"), models.TicketStatusWon, legs, &override, settleTime)
	require.NoError(t, err)
	assert.Equal(t, "250", s.Payout.Decimal.String())
	assert.Equal(t, "150", s.Profit.Decimal.String())
	require.NotNil(t, s.SettledAt)
}

// An override on a still-open ticket records the financials but does not
// close the ticket. Intentional: the result is known, the ticket is not
// formally settled yet.
func TestComputeSettlement_OverrideWhileOpen(t *testing.T) {
	legs := []*models.Leg{leg(-110, models.LegStatusOpen)}
	override := dec("180")

	s, err := ComputeSettlement(models.TicketTypeSingle, dec("100"), models.TicketStatusOpen, legs, &override, settleTime)
	require.NoError(t, err)
	assert.Equal(t, "180", s.Payout.Decimal.String())
	assert.Equal(t, "80", s.Profit.Decimal.String())
	assert.Nil(t, s.SettledAt)
}

func TestComputeSettlement_Idempotent(t *testing.T) {
	legs := []*models.Leg{
		leg(-110, models.LegStatusWon),
		leg(150, models.LegStatusWon),
	}
	first, err := ComputeSettlement(models.TicketTypeParlay, dec("20"), models.TicketStatusWon, legs, nil, settleTime)
	require.NoError(t, err)
	second, err := ComputeSettlement(models.TicketTypeParlay, dec("20"), models.TicketStatusWon, legs, nil, settleTime)
	require.NoError(t, err)

	assert.True(t, first.Payout.Decimal.Equal(second.Payout.Decimal))
	assert.True(t, first.Profit.Decimal.Equal(second.Profit.Decimal))
}

func TestComputeSettlement_RejectsBadStake(t *testing.T) {
	legs := []*models.Leg{leg(-110, models.LegStatusWon)}
	for _, stake := range []string{"0", "-10"} {
		_, err := ComputeSettlement(models.TicketTypeSingle, dec(stake), models.TicketStatusWon, legs, nil, settleTime)
		var ve *models.ValidationError
		require.ErrorAs(t, err, &ve)
	}
}

func TestComputeSettlement_WonWithBadOdds(t *testing.T) {
	legs := []*models.Leg{leg(0, models.LegStatusWon)}
	_, err := ComputeSettlement(models.TicketTypeSingle, dec("100"), models.TicketStatusWon, legs, nil, settleTime)
	assert.Error(t, err)
}
