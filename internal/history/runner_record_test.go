package history

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/codecbatch/internal/batch"
	"github.com/nguyentantai21042004/codecbatch/internal/config"
	"github.com/nguyentantai21042004/codecbatch/internal/logger"
	"github.com/nguyentantai21042004/codecbatch/pkg/executor/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStore_RecordsInterruptedRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	store, err := Open(filepath.Join(t.TempDir(), "data", "history.db"))
	require.NoError(t, err)
	defer store.Close()

	src := t.TempDir()
	for _, name := range []string{"x.dif", "y.dif"} {
		require.NoError(t, os.WriteFile(filepath.Join(src, name), []byte("data"), 0o644))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exec := mocks.NewMockExecutor(ctrl)
	exec.EXPECT().Execute(gomock.Any(), "./main", "-d", filepath.Join(src, "x.dif"), gomock.Any()).
		DoAndReturn(func(context.Context, string, ...string) (string, error) {
			cancel()
			return "", nil
		})

	cfg := config.Default()
	runner := batch.New(&cfg, exec, logger.NewWithWriter(io.Discard, "info"), store)
	job := batch.Job{SourceDir: src, DestDir: t.TempDir(), Mode: batch.ModeDecode, Selector: batch.SuffixSelector(".dif")}
	s := runner.Run(ctx, job)
	require.Equal(t, batch.OutcomeInterrupted, s.Outcome)

	runs, err := store.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, s.RunID, runs[0].ID)
	assert.Equal(t, "interrupted", runs[0].Outcome)
	assert.Equal(t, 2, runs[0].Discovered)
	assert.Equal(t, 1, runs[0].Succeeded)

	invs, err := store.Invocations(context.Background(), s.RunID)
	require.NoError(t, err)
	require.Len(t, invs, 1)
	assert.Equal(t, filepath.Join(src, "x.dif"), invs[0].InputPath)
}
