package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Mars/Olympus_Mons"))
	assert.True(t, IsValid("UTC"))
}

func TestIn_KeepsInstant(t *testing.T) {
	at := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

	got := In(at, "UTC")
	assert.True(t, got.Equal(at))

	fallback := In(at, "not-a-zone")
	assert.True(t, fallback.Equal(at), "an unknown zone changes presentation, never the instant")
}
