package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler drives the periodic catalog refresh in the background,
// independent of request handling.
type Scheduler struct {
	cron        *cron.Cron
	ctx         context.Context
	cancel      context.CancelFunc
	refreshFunc func(ctx context.Context)
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetRefreshFunction sets the catalog refresh callback.
func (s *Scheduler) SetRefreshFunction(f func(ctx context.Context)) {
	s.refreshFunc = f
}

// Start registers the refresh job on the given cron schedule
// (e.g. "@every 30m").
func (s *Scheduler) Start(schedule string) error {
	if s.refreshFunc == nil {
		log.Println("⚠️ Refresh function not set, scheduler will not refresh the catalog")
		return nil
	}

	_, err := s.cron.AddFunc(schedule, func() {
		log.Printf("🕘 Triggered scheduled catalog refresh")
		s.refreshFunc(s.ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("📅 Scheduler started - catalog refresh on %q", schedule)
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
