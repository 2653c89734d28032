package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	queueUC "github.com/BruksfildServices01/barber-queue/internal/usecase/queue"
	"github.com/BruksfildServices01/barber-queue/internal/validators"
)

// AdminHandler is the staff dashboard: full queue with phone numbers,
// stats, walk-ins, and service order.
type AdminHandler struct {
	engine QueueEngine
}

func NewAdminHandler(engine QueueEngine) *AdminHandler {
	return &AdminHandler{engine: engine}
}

// Queue lists every entry, waiting and serving, in queue order.
func (h *AdminHandler) Queue(c *gin.Context) {
	ctx := c.Request.Context()
	snapshot, err := h.engine.Snapshot(ctx)
	if err != nil {
		internalError(c, "queue_failed", err)
		return
	}
	barbers, services, err := referenceData(ctx, h.engine)
	if err != nil {
		internalError(c, "queue_failed", err)
		return
	}

	items := make([]dto.AdminQueueItemDTO, 0, len(snapshot))
	for _, e := range snapshot {
		items = append(items, dto.NewAdminQueueItem(e, barbers, services))
	}
	httpresp.List(c, items)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	st, err := h.engine.Stats(c.Request.Context())
	if err != nil {
		internalError(c, "stats_failed", err)
		return
	}
	httpresp.OK(c, st)
}

func (h *AdminHandler) Barbers(c *gin.Context) {
	barbers, err := h.engine.Barbers(c.Request.Context())
	if err != nil {
		internalError(c, "barbers_failed", err)
		return
	}
	httpresp.List(c, barbers)
}

// WalkIn admits a customer at the counter. Unlike the public form, any
// barber may be picked and unknown services fall back to the default
// duration.
func (h *AdminHandler) WalkIn(c *gin.Context) {
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
	entry, err := h.engine.Admit(ctx, queueUC.AdmitInput{
		CustomerName: strings.TrimSpace(req.CustomerName),
		Phone:        strings.TrimSpace(req.Phone),
		BarberID:     req.BarberID,
		ServiceID:    req.ServiceID,
		WalkIn:       true,
		Actor:        middleware.AdminFrom(c),
	})
	if err != nil {
		internalError(c, "walk_in_failed", err)
		return
	}

	barbers, services, err := referenceData(ctx, h.engine)
	if err != nil {
		internalError(c, "walk_in_failed", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAdminQueueItem(*entry, barbers, services))
}

// Serve marks the entry as in the chair. Unknown ids are a no-op.
func (h *AdminHandler) Serve(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}
	if err := h.engine.MarkServing(c.Request.Context(), id, middleware.AdminFrom(c)); err != nil {
		internalError(c, "serve_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Remove takes the entry out of the queue, whether waiting or served.
func (h *AdminHandler) Remove(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}
	if err := h.engine.Depart(c.Request.Context(), id, middleware.AdminFrom(c)); err != nil {
		internalError(c, "remove_failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
