package queue

import (
	"context"

	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Business error codes returned by Join.
const (
	CodeBarberUnavailable = "barber_unavailable"
	CodeServiceNotFound   = "service_not_found"
)

// Join is the customer self-service admission. The join form only offers
// available barbers and known services, so anything else is refused here;
// staff walk-ins go straight to Admit and keep the permissive fallback.
func (e *Engine) Join(ctx context.Context, in AdmitInput) (*models.QueueEntry, error) {
	barbers, err := e.repo.Barbers(ctx)
	if err != nil {
		return nil, err
	}
	if !barberAvailable(barbers, in.BarberID) {
		return nil, httperr.ErrBusinessf(CodeBarberUnavailable, "barber %d is not taking customers", in.BarberID)
	}

	services, err := e.repo.Services(ctx)
	if err != nil {
		return nil, err
	}
	if !serviceExists(services, in.ServiceID) {
		return nil, httperr.ErrBusinessf(CodeServiceNotFound, "service %d does not exist", in.ServiceID)
	}

	in.WalkIn = false
	if in.Actor == "" {
		in.Actor = ActorCustomer
	}
	return e.Admit(ctx, in)
}

func barberAvailable(barbers []models.Barber, id int) bool {
	for _, b := range barbers {
		if b.ID == id {
			return b.IsAvailable
		}
	}
	return false
}

func serviceExists(services []models.Service, id int) bool {
	for _, s := range services {
		if s.ID == id {
			return true
		}
	}
	return false
}
