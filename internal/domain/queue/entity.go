package queue

import "github.com/BruksfildServices01/barber-queue/internal/models"

// ===============================
// Domain Actions
// ===============================

// MarkServing is permissive: it does not check the current status, so an
// entry already being served stays serving and several entries may be
// served at once.
func MarkServing(e *models.QueueEntry) {
	e.Status = string(StatusServing)
}

func IsWaiting(e models.QueueEntry) bool {
	return e.Status == string(StatusWaiting)
}

func IsServing(e models.QueueEntry) bool {
	return e.Status == string(StatusServing)
}

// Find returns the index of the entry with the given id, or -1.
func Find(entries []models.QueueEntry, id int) int {
	for i := range entries {
		if entries[i].ID == id {
			return i
		}
	}
	return -1
}

// Remove drops the entry with the given id, keeping the relative order of
// the rest. The second return value reports whether anything was removed.
func Remove(entries []models.QueueEntry, id int) ([]models.QueueEntry, bool) {
	i := Find(entries, id)
	if i < 0 {
		return entries, false
	}
	out := make([]models.QueueEntry, 0, len(entries)-1)
	out = append(out, entries[:i]...)
	out = append(out, entries[i+1:]...)
	return out, true
}

// Waiting filters the waiting entries, preserving queue order.
func Waiting(entries []models.QueueEntry) []models.QueueEntry {
	out := make([]models.QueueEntry, 0, len(entries))
	for _, e := range entries {
		if IsWaiting(e) {
			out = append(out, e)
		}
	}
	return out
}

// Serving filters the entries currently in the chair.
func Serving(entries []models.QueueEntry) []models.QueueEntry {
	out := make([]models.QueueEntry, 0)
	for _, e := range entries {
		if IsServing(e) {
			out = append(out, e)
		}
	}
	return out
}

// MaxID is the largest id present, or 0 for an empty queue.
func MaxID(entries []models.QueueEntry) int {
	maxID := 0
	for _, e := range entries {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID
}
