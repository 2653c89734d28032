package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/barber-queue/internal/timezone"
	queueUC "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

const resetTimeout = 10 * time.Second

// Resetter is the engine call the closing-time job makes.
type Resetter interface {
	Reset(ctx context.Context, actor string) (int, error)
}

// ResetJob returns the cron job body: empty the queue, keep the id counter.
func ResetJob(r Resetter) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), resetTimeout)
		defer cancel()

		cleared, err := r.Reset(ctx, queueUC.ActorSystem)
		if err != nil {
			slog.Error("scheduled queue reset failed", "error", err)
			return
		}
		slog.Info("scheduled queue reset", "cleared", cleared)
	}
}

// InitScheduler starts a cron (with a seconds field) evaluated in the shop
// timezone. An empty spec means no reset is scheduled and nil is returned.
func InitScheduler(spec, tz string, r Resetter) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	c := cron.New(
		cron.WithSeconds(),
		cron.WithLocation(timezone.Location(tz)),
	)

	if _, err := c.AddFunc(spec, ResetJob(r)); err != nil {
		return nil, fmt.Errorf("invalid QUEUE_RESET_CRON %q: %w", spec, err)
	}

	c.Start()
	slog.Info("queue reset scheduled", "cron", spec, "timezone", tz)
	return c, nil
}
