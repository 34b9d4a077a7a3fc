package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"betledger/models"
	"betledger/service"
)

const dateLayout = "2006-01-02"

type legRequest struct {
	Selection    string  `json:"selection"`
	AmericanOdds float64 `json:"american_odds"`
}

type createTicketRequest struct {
	TicketType string          `json:"ticket_type"`
	Stake      decimal.Decimal `json:"stake"`
	League     string          `json:"league"`
	Book       string          `json:"book"`
	PlacedAt   string          `json:"placed_at"`
	Legs       []legRequest    `json:"legs"`
}

type updateTicketRequest struct {
	Stake    decimal.Decimal `json:"stake"`
	League   string          `json:"league"`
	Book     string          `json:"book"`
	PlacedAt string          `json:"placed_at"`
}

type legResultRequest struct {
	LegID  string `json:"leg_id"`
	Status string `json:"status"`
}

type settleTicketRequest struct {
	Status         string           `json:"status"`
	LegResults     []legResultRequest `json:"leg_results"`
	PayoutOverride *decimal.Decimal `json:"payout_override"`
}

type updateProfileRequest struct {
	StartingBankroll decimal.Decimal `json:"starting_bankroll"`
}

type legResponse struct {
	ID           string  `json:"id"`
	Selection    string  `json:"selection"`
	AmericanOdds float64 `json:"american_odds"`
	Status       string  `json:"status"`
}

type ticketResponse struct {
	ID         string           `json:"id"`
	TicketType string           `json:"ticket_type"`
	Stake      decimal.Decimal  `json:"stake"`
	League     string           `json:"league"`
	Book       string           `json:"book,omitempty"`
	Status     string           `json:"status"`
	Payout     *decimal.Decimal `json:"payout"`
	Profit     *decimal.Decimal `json:"profit"`
	PlacedAt   string           `json:"placed_at"`
	SettledAt  *time.Time       `json:"settled_at"`
	Legs       []legResponse    `json:"legs"`
}

func toTicketResponse(t *models.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:         t.ID,
		TicketType: string(t.TicketType),
		Stake:      t.Stake,
		League:     t.League,
		Book:       t.Book,
		Status:     string(t.Status),
		PlacedAt:   t.PlacedAt.Format(dateLayout),
		SettledAt:  t.SettledAt,
		Legs:       make([]legResponse, 0, len(t.Legs)),
	}
	if t.Payout.Valid {
		resp.Payout = &t.Payout.Decimal
	}
	if t.Profit.Valid {
		resp.Profit = &t.Profit.Decimal
	}
	for _, leg := range t.Legs {
		resp.Legs = append(resp.Legs, legResponse{
			ID:           leg.ID,
			Selection:    leg.Selection,
			AmericanOdds: leg.AmericanOdds,
			Status:       string(leg.Status),
		})
	}
	return resp
}

type profileResponse struct {
	UserID           string          `json:"user_id"`
	StartingBankroll decimal.Decimal `json:"starting_bankroll"`
	UnitSize         decimal.Decimal `json:"unit_size"`
}

type bankrollPointResponse struct {
	Date             string          `json:"date"`
	Bankroll         decimal.Decimal `json:"bankroll"`
	CumulativeProfit decimal.Decimal `json:"cumulative_profit"`
}

type statsResponse struct {
	TotalProfit     decimal.Decimal         `json:"total_profit"`
	TotalBet        decimal.Decimal         `json:"total_bet"`
	ROI             decimal.Decimal         `json:"roi"`
	Wins            int                     `json:"wins"`
	Losses          int                     `json:"losses"`
	Pushes          int                     `json:"pushes"`
	CurrentBankroll decimal.Decimal         `json:"current_bankroll"`
	Series          []bankrollPointResponse `json:"series"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

func (s *Server) handleCreateTicket(w http.ResponseWriter, r *http.Request) {
	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	placedAt := time.Now().In(s.location)
	if req.PlacedAt != "" {
		var err error
		if placedAt, err = s.parseDate(req.PlacedAt); err != nil {
			writeJSONError(w, http.StatusBadRequest, "placed_at must be a YYYY-MM-DD date")
			return
		}
	}

	input := service.CreateTicketInput{
		TicketType: models.TicketType(req.TicketType),
		Stake:      req.Stake,
		League:     req.League,
		Book:       req.Book,
		PlacedAt:   placedAt,
		Legs:       make([]service.CreateLegInput, 0, len(req.Legs)),
	}
	for _, leg := range req.Legs {
		input.Legs = append(input.Legs, service.CreateLegInput{
			Selection:    leg.Selection,
			AmericanOdds: leg.AmericanOdds,
		})
	}

	ticket, err := s.tickets.CreateTicket(r.Context(), userIDFrom(r), input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTicketResponse(ticket))
}

func (s *Server) handleGetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := s.tickets.GetTicket(r.Context(), userIDFrom(r), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(ticket))
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	tickets, err := s.tickets.ListTickets(r.Context(), userIDFrom(r), filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, toTicketResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateTicket(w http.ResponseWriter, r *http.Request) {
	var req updateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	placedAt, err := s.parseDate(req.PlacedAt)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "placed_at must be a YYYY-MM-DD date")
		return
	}

	ticket, err := s.tickets.UpdateTicket(r.Context(), userIDFrom(r), mux.Vars(r)["id"], service.UpdateTicketInput{
		Stake:    req.Stake,
		League:   req.League,
		Book:     req.Book,
		PlacedAt: placedAt,
	})
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(ticket))
}

func (s *Server) handleSettleTicket(w http.ResponseWriter, r *http.Request) {
	var req settleTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	input := service.SettleTicketInput{
		Status:         models.TicketStatus(req.Status),
		PayoutOverride: req.PayoutOverride,
		LegResults:     make([]service.LegResult, 0, len(req.LegResults)),
	}
	for _, lr := range req.LegResults {
		input.LegResults = append(input.LegResults, service.LegResult{
			LegID:  lr.LegID,
			Status: models.LegStatus(lr.Status),
		})
	}

	ticket, err := s.tickets.SettleTicket(r.Context(), userIDFrom(r), mux.Vars(r)["id"], input)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTicketResponse(ticket))
}

func (s *Server) handleDeleteTicket(w http.ResponseWriter, r *http.Request) {
	if err := s.tickets.DeleteTicket(r.Context(), userIDFrom(r), mux.Vars(r)["id"]); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.profiles.GetOrCreateProfile(r.Context(), userIDFrom(r))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		UserID:           profile.ID,
		StartingBankroll: profile.StartingBankroll,
		UnitSize:         profile.UnitSize,
	})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	profile, err := s.profiles.UpdateStartingBankroll(r.Context(), userIDFrom(r), req.StartingBankroll)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		UserID:           profile.ID,
		StartingBankroll: profile.StartingBankroll,
		UnitSize:         profile.UnitSize,
	})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	filter, err := s.parseFilter(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := s.stats.GetPeriodStats(r.Context(), userIDFrom(r), filter)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}

	resp := statsResponse{
		TotalProfit:     stats.Summary.TotalProfit,
		TotalBet:        stats.Summary.TotalBet,
		ROI:             stats.Summary.ROI,
		Wins:            stats.Summary.Wins,
		Losses:          stats.Summary.Losses,
		Pushes:          stats.Summary.Pushes,
		CurrentBankroll: stats.CurrentBankroll,
		Series:          make([]bankrollPointResponse, 0, len(stats.Series)),
	}
	for _, point := range stats.Series {
		resp.Series = append(resp.Series, bankrollPointResponse{
			Date:             point.Date.Format(dateLayout),
			Bankroll:         point.Bankroll,
			CumulativeProfit: point.CumulativeProfit,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetUnitSize(w http.ResponseWriter, r *http.Request) {
	size, err := s.profiles.RecommendedUnitSize(r.Context(), userIDFrom(r), time.Now())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"unit_size": size})
}

// parseFilter builds a PeriodFilter from the shared query parameters:
// range, start, end, league and status
func (s *Server) parseFilter(r *http.Request) (models.PeriodFilter, error) {
	query := r.URL.Query()

	filter := models.PeriodFilter{League: query.Get("league")}
	for _, raw := range strings.Split(query.Get("status"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		status := models.TicketStatus(raw)
		if !status.Valid() {
			return models.PeriodFilter{}, errors.New("unknown status " + raw)
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	preset := models.RangePreset(query.Get("range"))
	if preset == "" {
		preset = models.RangePresetAllTime
	}

	var start, end time.Time
	var err error
	if raw := query.Get("start"); raw != "" {
		if start, err = s.parseDate(raw); err != nil {
			return models.PeriodFilter{}, errors.New("start must be a YYYY-MM-DD date")
		}
	}
	if raw := query.Get("end"); raw != "" {
		if end, err = s.parseDate(raw); err != nil {
			return models.PeriodFilter{}, errors.New("end must be a YYYY-MM-DD date")
		}
	}

	dateRange, err := service.ResolveRange(preset, start, end, time.Now(), s.location)
	if err != nil {
		return models.PeriodFilter{}, err
	}
	filter.Range = dateRange
	return filter, nil
}

func (s *Server) parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, raw, s.location)
}

// writeServiceError maps service errors onto HTTP status codes
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not found")
	case models.IsValidationError(err):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	default:
		log.WithError(err).Error("Request failed")
		writeJSONError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
