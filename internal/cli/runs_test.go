package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/breaker"
	"github.com/roach88/enigma/internal/machine"
	"github.com/roach88/enigma/internal/store"
	"github.com/roach88/enigma/internal/testutil"
)

// seedRuns records n runs named job-1..job-n and returns the database path.
func seedRuns(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runs.db")
	st, err := store.Open(path)
	require.NoError(t, err)
	defer st.Close()

	clock := testutil.NewStepClock(time.Time{}, time.Minute)
	ids := testutil.NewSequentialIDs("run")
	for i := range n {
		run := &store.Run{
			ID:             ids.Generate(),
			JobHash:        "hash",
			DictionaryHash: "dictionary",
			Name:           fmt.Sprintf("job-%d", i+1),
			Ciphertext:     "ABC",
			Cribs:          []string{"XYZ"},
			Constraints:    breaker.DefaultConstraints(3),
			Workers:        4,
			Duration:       2 * time.Second,
			CreatedAt:      clock.Now(),
		}
		if i == n-1 {
			run.Result = breaker.Result{
				Found:     true,
				Plaintext: "XYZ",
				Score:     3,
				Tested:    10,
				Matched:   1,
				Settings: machine.Settings{
					Rotors:       []string{"I", "II", "III"},
					Positions:    "AAA",
					RingSettings: []int{1, 1, 1},
					Plugboard:    []string{},
					Reflector:    "B",
				},
			}
		}
		require.NoError(t, st.WriteRun(context.Background(), run))
	}
	return path
}

func TestRuns_ListText(t *testing.T) {
	db := seedRuns(t, 2)

	stdout, _, err := executeCommand(t, context.Background(), "runs", "--db", db)
	require.NoError(t, err)

	assert.Contains(t, stdout, "ID")
	assert.Contains(t, stdout, "CREATED")
	assert.Less(t, strings.Index(stdout, "run-2"), strings.Index(stdout, "run-1"), "newest run listed first")
}

func TestRuns_ListJSON(t *testing.T) {
	db := seedRuns(t, 3)

	stdout, _, err := executeCommand(t, context.Background(), "--format", "json", "runs", "--db", db, "-n", "2")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   []*store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "run-3", resp.Data[0].ID)
	assert.Equal(t, "run-2", resp.Data[1].ID)
	assert.True(t, resp.Data[0].Result.Found)
	assert.Equal(t, 2*time.Second, resp.Data[0].Duration)
}

func TestRuns_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	stdout, _, err := executeCommand(t, context.Background(), "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No runs recorded.")

	stdout, _, err = executeCommand(t, context.Background(), "--format", "json", "runs", "--db", db)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok","data":[]}`, stdout)
}

func TestRuns_Show(t *testing.T) {
	db := seedRuns(t, 2)

	stdout, _, err := executeCommand(t, context.Background(), "runs", "show", "--db", db, "run-2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Run:        run-2 (#2)")
	assert.Contains(t, stdout, "Plaintext:  XYZ")
	assert.Contains(t, stdout, "Fingerprint ")

	stdout, _, err = executeCommand(t, context.Background(), "runs", "show", "--db", db, "run-1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No candidate matched the cribs.")
}

func TestRuns_ShowJSON(t *testing.T) {
	db := seedRuns(t, 1)

	stdout, _, err := executeCommand(t, context.Background(), "--format", "json", "runs", "show", "--db", db, "run-1")
	require.NoError(t, err)

	var resp struct {
		Data store.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
	assert.Equal(t, "run-1", resp.Data.ID)
	assert.Equal(t, "B", resp.Data.Result.Settings.Reflector)
	assert.Len(t, resp.Data.SettingsHash, 64)
	assert.True(t, resp.Data.CreatedAt.Equal(testutil.Epoch))
}

func TestRuns_Errors(t *testing.T) {
	db := seedRuns(t, 1)

	tests := []struct {
		name string
		args []string
		code string
	}{
		{"list without db", []string{"runs"}, ErrCodeDatabase},
		{"show without db", []string{"runs", "show", "run-1"}, ErrCodeDatabase},
		{"unknown run", []string{"runs", "show", "--db", db, "run-9"}, ErrCodeRunNotFound},
		{"unopenable db", []string{"runs", "--db", "/nonexistent/dir/runs.db"}, ErrCodeDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCommand(t, context.Background(), append([]string{"--format", "json"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			var resp CLIResponse
			require.NoError(t, json.Unmarshal([]byte(stdout), &resp), stdout)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
