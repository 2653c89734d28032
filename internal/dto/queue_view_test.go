package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

var (
	barbers  = []models.Barber{{ID: 1, Name: "Mike Johnson", IsAvailable: true}}
	services = []models.Service{{ID: 3, Name: "Haircut + Shave", DurationMinutes: 45}}
)

func TestFormatWait(t *testing.T) {
	assert.Equal(t, "0min", FormatWait(0))
	assert.Equal(t, "45min", FormatWait(45))
	assert.Equal(t, "1h 0min", FormatWait(60))
	assert.Equal(t, "2h 5min", FormatWait(125))
}

func TestNewLiveQueue_SplitsAndHidesPhones(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	snapshot := []models.QueueEntry{
		{ID: 1, CustomerName: "A", Phone: "555", BarberID: 1, ServiceID: 3, Status: "serving", Position: 1, EstimatedWait: 45},
		{ID: 2, CustomerName: "B", Phone: "556", BarberID: 9, ServiceID: 3, Status: "waiting", Position: 1, EstimatedWait: 45},
		{ID: 3, CustomerName: "C", Phone: "557", BarberID: 1, ServiceID: 8, Status: "waiting", Position: 2, EstimatedWait: 75},
	}

	live := NewLiveQueue(snapshot, barbers, services, now)

	require.Len(t, live.Serving, 1)
	require.Len(t, live.Waiting, 2)
	assert.Equal(t, "A", live.Serving[0].CustomerName)
	assert.Equal(t, "Mike Johnson", live.Serving[0].BarberName)
	assert.Equal(t, "", live.Waiting[0].BarberName)
	assert.Equal(t, "", live.Waiting[1].ServiceName)
	assert.Equal(t, "1h 15min", live.Waiting[1].WaitLabel)

	raw, err := json.Marshal(live)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "phone")
	assert.NotContains(t, string(raw), "555")
}

func TestNewLiveQueue_EmptyListsEncodeAsArrays(t *testing.T) {
	raw, err := json.Marshal(NewLiveQueue(nil, nil, nil, time.Time{}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"serving":[]`)
	assert.Contains(t, string(raw), `"waiting":[]`)
}

func TestNewAdminQueueItem_KeepsContact(t *testing.T) {
	item := NewAdminQueueItem(models.QueueEntry{ID: 4, Phone: "555-0101", BarberID: 1, ServiceID: 3}, barbers, services)
	assert.Equal(t, "555-0101", item.Phone)
	assert.Equal(t, "Haircut + Shave", item.ServiceName)
}
