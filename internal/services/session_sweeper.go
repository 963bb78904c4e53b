package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/ministryflow/repository"
)

// SessionSweeper periodically removes expired sessions from stores that
// have no native key expiry.
type SessionSweeper struct {
	sessions repository.SessionSweeper
	logger   *zap.Logger
	cron     *cron.Cron
	interval time.Duration
	now      func() time.Time
}

func NewSessionSweeper(sessions repository.SessionSweeper, interval time.Duration, logger *zap.Logger) *SessionSweeper {
	if interval < time.Second {
		interval = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &SessionSweeper{
		sessions: sessions,
		logger:   logger,
		interval: interval,
		cron:     cron.New(cron.WithSeconds()),
		now:      time.Now,
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), interval)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("session sweep failed", zap.Error(err))
		}
	})

	return s
}

// Start launches the cron scheduler.
func (s *SessionSweeper) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("session sweeper started", zap.Duration("interval", s.interval))
}

// Stop waits for a running sweep or for ctx to end.
func (s *SessionSweeper) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("session sweeper stopped")
}

// Sweep purges sessions that expired before now.
func (s *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	if s == nil || s.sessions == nil {
		return 0, nil
	}
	purged, err := s.sessions.PurgeExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		s.logger.Info("expired sessions purged", zap.Int("count", purged))
	}
	return purged, nil
}
