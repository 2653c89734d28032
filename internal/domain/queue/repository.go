package queue

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Repository is what the queue engine needs from persistence. Reads of
// malformed data never fail: implementations soft-reset to defaults and
// only return errors for backend failures.
type Repository interface {
	// -------- Reference data --------
	Barbers(ctx context.Context) ([]models.Barber, error)
	Services(ctx context.Context) ([]models.Service, error)

	// -------- Queue --------
	Queue(ctx context.Context) ([]models.QueueEntry, error)
	SaveQueue(ctx context.Context, entries []models.QueueEntry) error

	// -------- Id counter --------
	NextQueueID(ctx context.Context) (int, error)
	SetNextQueueID(ctx context.Context, next int) error
}
