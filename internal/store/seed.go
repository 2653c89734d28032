package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Seed is installed on first run: each key is written only when it is
// entirely absent from the backend.
type Seed struct {
	Barbers     []models.Barber     `yaml:"barbers"`
	Services    []models.Service    `yaml:"services"`
	Queue       []models.QueueEntry `yaml:"queue"`
	NextQueueID int                 `yaml:"next_queue_id"`
}

func DefaultSeed() Seed {
	return Seed{
		Barbers: []models.Barber{
			{ID: 1, Name: "Mike Johnson", IsAvailable: true},
			{ID: 2, Name: "Sarah Wilson", IsAvailable: true},
			{ID: 3, Name: "Carlos Rodriguez", IsAvailable: true},
		},
		Services: []models.Service{
			{ID: 1, Name: "Haircut", DurationMinutes: 30},
			{ID: 2, Name: "Shave", DurationMinutes: 20},
			{ID: 3, Name: "Haircut + Shave", DurationMinutes: 45},
			{ID: 4, Name: "Beard Trim", DurationMinutes: 15},
			{ID: 5, Name: "Hair Wash", DurationMinutes: 10},
		},
		Queue: []models.QueueEntry{
			{ID: 1, CustomerName: "John D.", Phone: "555-0101", BarberID: 1, ServiceID: 1, Status: "waiting"},
			{ID: 2, CustomerName: "Emily R.", Phone: "555-0102", BarberID: 2, ServiceID: 3, Status: "waiting"},
			{ID: 3, CustomerName: "David M.", Phone: "555-0103", BarberID: 1, ServiceID: 2, Status: "waiting"},
		},
		NextQueueID: 4,
	}
}

// WithoutSampleQueue drops the demo customers but keeps the counter above
// any id the sample would have used.
func (s Seed) WithoutSampleQueue() Seed {
	s.Queue = nil
	return s
}

// LoadSeedFile reads a YAML seed. Sections left out of the file fall back
// to DefaultSeed.
func LoadSeedFile(path string) (Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed file: %w", err)
	}

	var fromFile Seed
	if err := yaml.Unmarshal(raw, &fromFile); err != nil {
		return Seed{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	seed := DefaultSeed()
	if fromFile.Barbers != nil {
		seed.Barbers = fromFile.Barbers
	}
	if fromFile.Services != nil {
		seed.Services = fromFile.Services
	}
	if fromFile.Queue != nil {
		seed.Queue = fromFile.Queue
	}
	if fromFile.NextQueueID > 0 {
		seed.NextQueueID = fromFile.NextQueueID
	}
	return seed, nil
}
