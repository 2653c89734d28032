package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/dto"
)

// run executes queuectl against a sqlite file and returns stdout.
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--store", "sqlite", "--dsn", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "queue.db")
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "queuectl", cmd.Use)

	for _, name := range []string{"join", "status", "leave", "list", "serve", "remove", "stats", "watch", "seed", "reset"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := run(t, newDB(t), "--format", "yaml", "stats")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestSeed_OnlyOnce(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "--format", "json", "seed")
	require.NoError(t, err)
	var resp struct {
		Data struct {
			Written []string `json:"written"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Data.Written, 4)

	out, err = run(t, db, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing written")
}

func TestCustomerJourney(t *testing.T) {
	db := newDB(t)

	_, err := run(t, db, "seed", "--no-sample")
	require.NoError(t, err)

	out, err := run(t, db, "join", "--name", "A", "--phone", "555-1", "--barber", "1", "--service", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "position 1")
	assert.Contains(t, out, "30min")

	_, err = run(t, db, "join", "--name", "A", "--phone", "555-1", "--barber", "1", "--service", "1")
	require.Error(t, err, "one customer per store")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err = run(t, db, "join", "--walk-in", "--name", "B", "--phone", "555-2", "--barber", "2", "--service", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "position 2")
	assert.Contains(t, out, "1h 0min")

	out, err = run(t, db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Position: #1")
	assert.Contains(t, out, "Mike Johnson")

	out, err = run(t, db, "serve", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "being served")

	out, err = run(t, db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "NOW")

	out, err = run(t, db, "--format", "json", "stats")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":{"waiting":1,"serving":1,"total":2,"avg_wait_minutes":45}}`, out)

	out, err = run(t, db, "leave")
	require.NoError(t, err)
	assert.Contains(t, out, "#1")

	_, err = run(t, db, "status")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err = run(t, db, "--format", "json", "list")
	require.NoError(t, err)
	var live struct {
		Data dto.LiveQueueDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &live))
	require.Len(t, live.Data.Waiting, 1)
	assert.Equal(t, "B", live.Data.Waiting[0].CustomerName)
	assert.Equal(t, 1, live.Data.Waiting[0].Position)
	assert.Equal(t, 45, live.Data.Waiting[0].EstimatedWait)
}

func TestStatus_RemovedByStaff(t *testing.T) {
	db := newDB(t)

	_, err := run(t, db, "seed", "--no-sample")
	require.NoError(t, err)
	_, err = run(t, db, "join", "--name", "A", "--phone", "1", "--barber", "1", "--service", "2")
	require.NoError(t, err)

	_, err = run(t, db, "remove", "1")
	require.NoError(t, err)

	_, err = run(t, db, "status")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer in the queue")

	// the stale session was cleared, so joining again works
	_, err = run(t, db, "join", "--name", "A", "--phone", "1", "--barber", "1", "--service", "2")
	require.NoError(t, err)
}

func TestJoin_Validation(t *testing.T) {
	db := newDB(t)

	_, err := run(t, db, "join", "--name", "  ", "--phone", "1", "--barber", "1", "--service", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "customer_name")

	_, err = run(t, db, "join", "--name", "A", "--phone", "1", "--barber", "42", "--service", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not taking customers")
}

func TestServeAndRemove_UnknownIDIsReported(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "serve", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to do")

	_, err = run(t, db, "remove", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestList_Text(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "POS")
	assert.Contains(t, out, "John D.")
	assert.NotContains(t, out, "555-0101")

	out, err = run(t, db, "list", "--staff")
	require.NoError(t, err)
	assert.Contains(t, out, "555-0101")

	_, err = run(t, db, "reset")
	require.NoError(t, err)
	out, err = run(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Walk-ins welcome")
}

func TestReset_KeepsIDsIncreasing(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 3 entries")

	out, err = run(t, db, "--format", "json", "join", "--walk-in", "--name", "Z", "--phone", "1", "--barber", "1", "--service", "1")
	require.NoError(t, err)
	var resp struct {
		Data dto.QueueItemDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 4, resp.Data.ID)
	assert.Equal(t, 1, resp.Data.Position)
}

func TestWatch_Count(t *testing.T) {
	db := newDB(t)

	out, err := run(t, db, "watch", "--interval", "10ms", "--count", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("Last updated:")))
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
	assert.Equal(t, ExitCommandError, GetExitCode(WrapExitError(ExitCommandError, "x", assert.AnError)))
}
