package queue

import "github.com/BruksfildServices01/barber-queue/internal/models"

// Renumber reassigns position and estimated_wait of every waiting entry from
// its place among the waiting entries, in the existing order. Serving
// entries are left untouched. Full O(W) recompute on every call.
func Renumber(entries []models.QueueEntry, services []models.Service) {
	idx := 0
	for i := range entries {
		if !IsWaiting(entries[i]) {
			continue
		}
		entries[i].Position = idx + 1
		entries[i].EstimatedWait = EstimateWait(idx+1, ServiceDuration(services, entries[i].ServiceID))
		idx++
	}
}
