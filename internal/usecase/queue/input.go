package queue

import "github.com/BruksfildServices01/barber-queue/internal/metrics"

// Well-known actors. Admin actions carry the admin username instead.
const (
	ActorCustomer = "customer"
	ActorSystem   = "system"
)

// AdmitInput is the join form. Validation happens before the engine; the
// engine only tolerates unknown reference ids.
type AdmitInput struct {
	CustomerName string
	Phone        string
	BarberID     int
	ServiceID    int

	// WalkIn marks entries added by staff at the counter.
	WalkIn bool
	Actor  string
}

func (in AdmitInput) source() string {
	if in.WalkIn {
		return metrics.SourceWalkIn
	}
	return metrics.SourceCustomer
}
