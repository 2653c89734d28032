package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	queueUC "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

// ======================================================
// HANDLER
// ======================================================

// QueueHandler serves the customer side: join, my status, leave, and the
// public live queue.
type QueueHandler struct {
	engine QueueEngine
	clock  clockwork.Clock
}

func NewQueueHandler(engine QueueEngine, clock clockwork.Clock) *QueueHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &QueueHandler{engine: engine, clock: clock}
}

// ======================================================
// OPTIONS (join form)
// ======================================================

func (h *QueueHandler) Options(c *gin.Context) {
	barbers, services, err := referenceData(c.Request.Context(), h.engine)
	if err != nil {
		internalError(c, "options_failed", err)
		return
	}

	available := make([]models.Barber, 0, len(barbers))
	for _, b := range barbers {
		if b.IsAvailable {
			available = append(available, b)
		}
	}

	httpresp.OK(c, gin.H{
		"barbers":  available,
		"services": services,
	})
}

// ======================================================
// JOIN
// ======================================================

func (h *QueueHandler) Join(c *gin.Context) {
	var req AdmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "customer_name, phone, barber_id and service_id are required.")
		return
	}
	if err := validators.ValidateAdmission(req.CustomerName, req.Phone, req.BarberID, req.ServiceID); err != nil {
		httperr.BadRequest(c, "invalid_admission", err.Error())
		return
	}

	ctx := c.Request.Context()
	entry, err := h.engine.Join(ctx, queueUC.AdmitInput{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		Actor:        queueUC.ActorCustomer,
	})
	if httperr.WriteBusiness(c, err) {
		return
	}
	if err != nil {
		internalError(c, "join_failed", err)
		return
	}

	barbers, services, err := referenceData(ctx, h.engine)
	if err != nil {
		internalError(c, "join_failed", err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQueueItem(*entry, barbers, services))
}

// ======================================================
// LIVE QUEUE
// ======================================================

func (h *QueueHandler) List(c *gin.Context) {
	live, err := liveQueue(c.Request.Context(), h.engine, h.clock)
	if err != nil {
		internalError(c, "queue_failed", err)
		return
	}
	httpresp.OK(c, live)
}

// ======================================================
// MY STATUS
// ======================================================

func (h *QueueHandler) Status(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	entry, found, err := h.engine.Entry(ctx, id)
	if err != nil {
		internalError(c, "status_failed", err)
		return
	}
	if !found {
		httperr.NotFound(c, "queue_entry_not_found", "You are no longer in the queue.")
		return
	}

	barbers, services, err := referenceData(ctx, h.engine)
	if err != nil {
		internalError(c, "status_failed", err)
		return
	}

	httpresp.OK(c, gin.H{
		"entry":        dto.NewQueueItem(*entry, barbers, services),
		"being_served": domain.IsServing(*entry),
	})
}

// ======================================================
// LEAVE
// ======================================================

// Leave is idempotent: leaving twice, or leaving an unknown id, is 204.
func (h *QueueHandler) Leave(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}

	if err := h.engine.Depart(c.Request.Context(), id, queueUC.ActorCustomer); err != nil {
		internalError(c, "leave_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// HELPERS
// ======================================================
