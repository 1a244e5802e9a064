package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tasklight/backend/repository"
)

// SessionJanitor periodically removes expired sessions from stores that do
// not expire entries on their own (the in-memory table). TTL-backed stores
// such as Redis never register one.
type SessionJanitor struct {
	pruner repository.SessionPruner
	cron   *cron.Cron
	logger *zap.Logger
}

func NewSessionJanitor(pruner repository.SessionPruner, interval time.Duration, logger *zap.Logger) *SessionJanitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	j := &SessionJanitor{
		pruner: pruner,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger,
	}

	schedule := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, _ = j.cron.AddFunc(schedule, j.sweep)

	return j
}

// Start launches the cron scheduler.
func (j *SessionJanitor) Start() {
	if j == nil || j.cron == nil {
		return
	}
	j.cron.Start()
	j.logger.Info("session janitor started")
}

// Stop gracefully stops the scheduler.
func (j *SessionJanitor) Stop(ctx context.Context) {
	if j == nil || j.cron == nil {
		return
	}
	stopCtx := j.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	j.logger.Info("session janitor stopped")
}

func (j *SessionJanitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := j.pruner.PruneExpired(ctx, time.Now())
	if err != nil {
		j.logger.Error("session sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("expired sessions pruned", zap.Int("count", removed))
	}
}
