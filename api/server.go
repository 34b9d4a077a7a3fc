package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"betledger/config"
	"betledger/service"
)

// Server exposes the ledger over HTTP
type Server struct {
	cfg        *config.Config
	location   *time.Location
	tickets    service.TicketService
	profiles   service.ProfileService
	stats      service.StatsService
	httpServer *http.Server
}

// NewServer creates the HTTP server and wires all routes
func NewServer(cfg *config.Config, loc *time.Location, tickets service.TicketService, profiles service.ProfileService, stats service.StatsService) *Server {
	s := &Server{
		cfg:      cfg,
		location: loc,
		tickets:  tickets,
		profiles: profiles,
		stats:    stats,
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(s.authMiddleware)
	api.HandleFunc("/tickets", s.handleListTickets).Methods("GET")
	api.HandleFunc("/tickets", s.handleCreateTicket).Methods("POST")
	api.HandleFunc("/tickets/{id}", s.handleGetTicket).Methods("GET")
	api.HandleFunc("/tickets/{id}", s.handleUpdateTicket).Methods("PUT")
	api.HandleFunc("/tickets/{id}", s.handleDeleteTicket).Methods("DELETE")
	api.HandleFunc("/tickets/{id}/settle", s.handleSettleTicket).Methods("POST")
	api.HandleFunc("/profile", s.handleGetProfile).Methods("GET")
	api.HandleFunc("/profile", s.handleUpdateProfile).Methods("PUT")
	api.HandleFunc("/stats", s.handleGetStats).Methods("GET")
	api.HandleFunc("/unit-size", s.handleGetUnitSize).Methods("GET")

	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.httpServer = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      requestLogging(c.Handler(router)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start blocks serving HTTP until the server is shut down
func (s *Server) Start() error {
	log.WithField("addr", s.cfg.ListenAddr).Info("HTTP server listening")
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts the server down
func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}
}

// Handler exposes the full middleware chain for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("Handled request")
	})
}
