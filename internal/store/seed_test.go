package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedFile_OverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
barbers:
  - id: 10
    name: Ana
    is_available: true
  - id: 11
    name: Bruno
    is_available: false
queue: []
next_queue_id: 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)

	require.Len(t, seed.Barbers, 2)
	assert.Equal(t, "Bruno", seed.Barbers[1].Name)
	assert.False(t, seed.Barbers[1].IsAvailable)

	assert.Equal(t, DefaultSeed().Services, seed.Services, "absent sections keep defaults")
	assert.Empty(t, seed.Queue)
	assert.Equal(t, 100, seed.NextQueueID)
}

func TestLoadSeedFile_Errors(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("barbers: [oops"), 0o644))
	_, err = LoadSeedFile(path)
	assert.Error(t, err)
}

func TestWithoutSampleQueue(t *testing.T) {
	seed := DefaultSeed().WithoutSampleQueue()
	assert.Empty(t, seed.Queue)
	assert.Equal(t, 4, seed.NextQueueID)
	assert.Len(t, DefaultSeed().Queue, 3, "the default is not mutated")
}
