package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily usage-summary job.
type Scheduler struct {
	cron        *cron.Cron
	ctx         context.Context
	cancel      context.CancelFunc
	summaryFunc func(ctx context.Context) error
}

func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetSummaryFunction sets the function that builds and delivers the summary.
func (s *Scheduler) SetSummaryFunction(f func(ctx context.Context) error) {
	s.summaryFunc = f
}

func (s *Scheduler) Start() error {
	if s.summaryFunc == nil {
		log.Println("⚠️ Summary function not set, scheduler will not run")
		return nil
	}

	// Daily at 21:00 UTC
	_, err := s.cron.AddFunc("0 21 * * *", func() {
		log.Println("🕘 Triggered daily usage summary at 21:00 UTC")
		if err := s.summaryFunc(s.ctx); err != nil {
			log.Printf("❌ Daily usage summary failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("📅 Scheduler started - daily usage summary at 21:00 UTC")
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
