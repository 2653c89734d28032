package handlers

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	queueUC "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
)

// QueueEngine is the part of the queue engine the HTTP layer drives.
type QueueEngine interface {
	Barbers(ctx context.Context) ([]models.Barber, error)
	Services(ctx context.Context) ([]models.Service, error)
	Snapshot(ctx context.Context) ([]models.QueueEntry, error)
	Entry(ctx context.Context, id int) (*models.QueueEntry, bool, error)
	Stats(ctx context.Context) (domain.Stats, error)

	Join(ctx context.Context, in queueUC.AdmitInput) (*models.QueueEntry, error)
	Admit(ctx context.Context, in queueUC.AdmitInput) (*models.QueueEntry, error)
	Depart(ctx context.Context, id int, actor string) error
	MarkServing(ctx context.Context, id int, actor string) error
}

var _ QueueEngine = (*queueUC.Engine)(nil)

// ======================================================
// HELPERS
// ======================================================

type AdmitRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	BarberID     int    `json:"barber_id" binding:"required"`
	ServiceID    int    `json:"service_id" binding:"required"`
}

func parseEntryID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Queue entry id must be a positive integer.")
		return 0, false
	}
	return id, true
}

// internalError logs the backend failure and answers 500 without leaking it.
func internalError(c *gin.Context, code string, err error) {
	slog.Error("queue backend failure",
		"code", code,
		"route", c.FullPath(),
		"error", err,
	)
	httperr.Internal(c, code, "Something went wrong, please try again.")
}

// referenceData loads barbers and services together; most views need both.
func referenceData(ctx context.Context, engine QueueEngine) ([]models.Barber, []models.Service, error) {
	barbers, err := engine.Barbers(ctx)
	if err != nil {
		return nil, nil, err
	}
	services, err := engine.Services(ctx)
	if err != nil {
		return nil, nil, err
	}
	return barbers, services, nil
}
