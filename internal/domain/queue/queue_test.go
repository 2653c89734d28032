package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

var testServices = []models.Service{
	{ID: 1, Name: "Haircut", DurationMinutes: 30},
	{ID: 2, Name: "Shave", DurationMinutes: 20},
	{ID: 3, Name: "Haircut + Shave", DurationMinutes: 45},
	{ID: 9, Name: "Broken", DurationMinutes: 0},
}

func entry(id int, status Status, serviceID int) models.QueueEntry {
	return models.QueueEntry{ID: id, Status: string(status), ServiceID: serviceID}
}

func TestEstimateWait(t *testing.T) {
	assert.Equal(t, 30, EstimateWait(1, 30))
	assert.Equal(t, 60, EstimateWait(2, 45))
	assert.Equal(t, 50, EstimateWait(3, 20))
	assert.Equal(t, 10, EstimateWait(0, 10), "positions below 1 clamp to the head of the line")
}

func TestServiceDuration_Fallback(t *testing.T) {
	assert.Equal(t, 45, ServiceDuration(testServices, 3))
	assert.Equal(t, DefaultServiceMinutes, ServiceDuration(testServices, 404))
	assert.Equal(t, DefaultServiceMinutes, ServiceDuration(testServices, 9))
	assert.Equal(t, DefaultServiceMinutes, ServiceDuration(nil, 1))
}

func TestNextPosition_IgnoresServing(t *testing.T) {
	entries := []models.QueueEntry{
		entry(1, StatusServing, 1),
		entry(2, StatusWaiting, 1),
		entry(3, StatusWaiting, 2),
	}
	assert.Equal(t, 3, NextPosition(entries))
	assert.Equal(t, 1, NextPosition(nil))
}

func TestRenumber_SkipsServingAndKeepsOrder(t *testing.T) {
	entries := []models.QueueEntry{
		entry(4, StatusWaiting, 3),
		entry(1, StatusServing, 1),
		entry(7, StatusWaiting, 404),
		entry(2, StatusWaiting, 2),
	}
	entries[1].Position = 9
	entries[1].EstimatedWait = 99

	Renumber(entries, testServices)

	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, 45, entries[0].EstimatedWait)

	assert.Equal(t, 9, entries[1].Position, "serving entries keep their last values")
	assert.Equal(t, 99, entries[1].EstimatedWait)

	assert.Equal(t, 2, entries[2].Position)
	assert.Equal(t, 15+DefaultServiceMinutes, entries[2].EstimatedWait)

	assert.Equal(t, 3, entries[3].Position)
	assert.Equal(t, 30+20, entries[3].EstimatedWait)
}

func TestRemove(t *testing.T) {
	entries := []models.QueueEntry{entry(1, StatusWaiting, 1), entry(2, StatusWaiting, 1), entry(3, StatusWaiting, 1)}

	out, removed := Remove(entries, 2)
	require.True(t, removed)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, 3, out[1].ID)

	same, removed := Remove(out, 42)
	assert.False(t, removed)
	assert.Equal(t, out, same)
}

func TestMarkServing_IsPermissive(t *testing.T) {
	e := entry(1, StatusServing, 1)
	MarkServing(&e)
	assert.True(t, IsServing(e))

	w := entry(2, StatusWaiting, 1)
	MarkServing(&w)
	assert.Equal(t, string(StatusServing), w.Status)
}

func TestComputeStats_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, ComputeStats(nil))
	assert.Equal(t, Stats{}, ComputeStats([]models.QueueEntry{}))
}

func TestComputeStats_AveragesAllEntries(t *testing.T) {
	snapshot := []models.QueueEntry{
		{ID: 1, Status: string(StatusServing), EstimatedWait: 30},
		{ID: 2, Status: string(StatusWaiting), EstimatedWait: 45},
		{ID: 3, Status: string(StatusWaiting), EstimatedWait: 50},
	}

	st := ComputeStats(snapshot)

	assert.Equal(t, 2, st.Waiting)
	assert.Equal(t, 1, st.Serving)
	assert.Equal(t, 3, st.Total)
	// 125 / 3 = 41.67
	assert.Equal(t, 42, st.AvgWaitMinutes)
}

func TestComputeStats_RoundsHalfUp(t *testing.T) {
	snapshot := []models.QueueEntry{
		{ID: 1, Status: string(StatusWaiting), EstimatedWait: 30},
		{ID: 2, Status: string(StatusWaiting), EstimatedWait: 45},
	}
	assert.Equal(t, 38, ComputeStats(snapshot).AvgWaitMinutes)
}
