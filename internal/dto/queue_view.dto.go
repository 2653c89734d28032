package dto

import (
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// QueueItemDTO is what the public sees of an entry: no phone number.
type QueueItemDTO struct {
	ID            int    `json:"id"`
	Position      int    `json:"position"`
	CustomerName  string `json:"customer_name"`
	BarberName    string `json:"barber_name"`
	ServiceName   string `json:"service_name"`
	Status        string `json:"status"`
	EstimatedWait int    `json:"estimated_wait"`
	WaitLabel     string `json:"wait_label"`
}

type LiveQueueDTO struct {
	Serving   []QueueItemDTO `json:"serving"`
	Waiting   []QueueItemDTO `json:"waiting"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// AdminQueueItemDTO adds the contact details staff need at the counter.
type AdminQueueItemDTO struct {
	QueueItemDTO
	Phone     string    `json:"phone"`
	BarberID  int       `json:"barber_id"`
	ServiceID int       `json:"service_id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewQueueItem(e models.QueueEntry, barbers []models.Barber, services []models.Service) QueueItemDTO {
	return QueueItemDTO{
		ID:            e.ID,
		Position:      e.Position,
		CustomerName:  e.CustomerName,
		BarberName:    barberName(barbers, e.BarberID),
		ServiceName:   serviceName(services, e.ServiceID),
		Status:        e.Status,
		EstimatedWait: e.EstimatedWait,
		WaitLabel:     FormatWait(e.EstimatedWait),
	}
}

func NewAdminQueueItem(e models.QueueEntry, barbers []models.Barber, services []models.Service) AdminQueueItemDTO {
	return AdminQueueItemDTO{
		QueueItemDTO: NewQueueItem(e, barbers, services),
		Phone:        e.Phone,
		BarberID:     e.BarberID,
		ServiceID:    e.ServiceID,
		CreatedAt:    e.CreatedAt,
	}
}

// NewLiveQueue splits a snapshot into the serving and waiting lists, both
// in queue order.
func NewLiveQueue(snapshot []models.QueueEntry, barbers []models.Barber, services []models.Service, now time.Time) LiveQueueDTO {
	out := LiveQueueDTO{
		Serving:   []QueueItemDTO{},
		Waiting:   []QueueItemDTO{},
		UpdatedAt: now,
	}
	for _, e := range snapshot {
		item := NewQueueItem(e, barbers, services)
		switch {
		case domain.IsServing(e):
			out.Serving = append(out.Serving, item)
		case domain.IsWaiting(e):
			out.Waiting = append(out.Waiting, item)
		}
	}
	return out
}

// FormatWait renders minutes as "45min" or "1h 5min".
func FormatWait(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}

// Unknown references render as empty names.
func barberName(barbers []models.Barber, id int) string {
	for _, b := range barbers {
		if b.ID == id {
			return b.Name
		}
	}
	return ""
}

func serviceName(services []models.Service, id int) string {
	for _, s := range services {
		if s.ID == id {
			return s.Name
		}
	}
	return ""
}
