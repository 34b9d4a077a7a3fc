package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"betledger/service"
)

// Scheduler runs the recurring ledger maintenance jobs
type Scheduler struct {
	cron     *cron.Cron
	profiles service.ProfileService
	location *time.Location
}

// New creates a scheduler in the ledger's timezone
func New(profiles service.ProfileService, loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		profiles: profiles,
		location: loc,
	}
}

// Start registers the jobs and starts the cron loop.
// Unit sizes are recomputed shortly after local midnight so a month
// rollover takes effect on its first day.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("5 0 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := s.profiles.RefreshUnitSizes(ctx, time.Now().In(s.location)); err != nil {
			log.WithError(err).Error("Unit size refresh failed")
			return
		}
		log.Info("Refreshed unit sizes")
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
