package queue

// ===============================
// Queue Entry Status
// ===============================

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusServing Status = "serving"
)

// InitialStatus é o status de toda entrada recém-admitida.
func InitialStatus() Status {
	return StatusWaiting
}

func (s Status) String() string {
	return string(s)
}
