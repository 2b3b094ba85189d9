package history

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/codecbatch/internal/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewStore(db)
	require.NoError(t, err)
	return s
}

func sampleSummary(id string, started time.Time) batch.Summary {
	return batch.Summary{
		RunID:      id,
		Mode:       batch.ModeDecode,
		SourceDir:  "../IMAGES_DIFS",
		DestDir:    "DECODED_OUTPUT",
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Outcome:    batch.OutcomeCompleted,
		Discovered: 2,
		Results: []batch.InvocationResult{
			{
				Task:     batch.FileTask{InputPath: "../IMAGES_DIFS/x.dif", OutputPath: "DECODED_OUTPUT/x.pnm"},
				Status:   batch.StatusSuccess,
				Duration: 1200 * time.Millisecond,
			},
			{
				Task:     batch.FileTask{InputPath: "../IMAGES_DIFS/y.dif", OutputPath: "DECODED_OUTPUT/y.pnm"},
				Status:   batch.StatusFailure,
				Cause:    errors.New("codec process failed: command './main' exited with status 1"),
				Duration: 300 * time.Millisecond,
			},
		},
	}
}

func TestStore_RecordAndList(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, sampleSummary("run-1", base)))
	require.NoError(t, s.Record(ctx, sampleSummary("run-2", base.Add(time.Hour))))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].ID, "most recent first")
	r := runs[1]
	assert.Equal(t, "decode", r.Mode)
	assert.Equal(t, "completed", r.Outcome)
	assert.Equal(t, 2, r.Discovered)
	assert.Equal(t, 1, r.Succeeded)
	assert.Equal(t, 1, r.Failed)
	assert.Empty(t, r.Error)
	assert.True(t, base.Equal(r.StartedAt))
	assert.Equal(t, 3*time.Second, r.FinishedAt.Sub(r.StartedAt))
}

func TestStore_ListRunsLimit(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Record(ctx, sampleSummary(id, base.Add(time.Duration(i)*time.Minute))))
	}

	runs, err := s.ListRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)

	all, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestStore_Invocations(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, sampleSummary("run-1", time.Now())))

	invs, err := s.Invocations(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, invs, 2)

	assert.Equal(t, 1, invs[0].Seq)
	assert.Equal(t, "success", invs[0].Status)
	assert.Empty(t, invs[0].Cause)
	assert.Equal(t, 1200*time.Millisecond, invs[0].Duration)

	assert.Equal(t, "failure", invs[1].Status)
	assert.Contains(t, invs[1].Cause, "exited with status 1")
}

func TestStore_RecordsAbortedRunWithoutInvocations(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	sum := batch.Summary{
		RunID:      "aborted",
		Mode:       batch.ModeEncode,
		SourceDir:  "../IMAGES_TESTS",
		DestDir:    "ENCODED_RESULTS",
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
		Outcome:    batch.OutcomeAborted,
		Err:        batch.ErrMissingInputDirectory,
	}
	require.NoError(t, s.Record(ctx, sum))

	runs, err := s.ListRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "aborted", runs[0].Outcome)
	assert.Equal(t, batch.ErrMissingInputDirectory.Error(), runs[0].Error)

	invs, err := s.Invocations(ctx, "aborted")
	require.NoError(t, err)
	assert.Empty(t, invs)
}

func TestStore_DuplicateRunIDFails(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, sampleSummary("dup", time.Now())))
	assert.Error(t, s.Record(ctx, sampleSummary("dup", time.Now())))

	invs, err := s.Invocations(ctx, "dup")
	require.NoError(t, err)
	assert.Len(t, invs, 2, "failed insert must roll back")
}

func TestOpen_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "history.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.FileExists(t, path)
}
