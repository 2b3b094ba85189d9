package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStem(t *testing.T) {
	cases := []struct {
		name, want string
	}{
		{"yacht.pnm", "yacht"},
		{"yacht", "yacht"},
		{"archive.tar.gz", "archive.tar"},
		{".profile", ".profile"},
		{"..hidden", "..hidden"},
		{"..hidden.dif", "..hidden"},
		{"trailing.", "trailing"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Stem(tc.name), "Stem(%q)", tc.name)
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("ENCODED_RESULTS", "yacht.encoded"),
		OutputPath("ENCODED_RESULTS", "yacht.pnm", ModeEncode.TargetExt()))
	assert.Equal(t, filepath.Join("DECODED_OUTPUT", "x.pnm"),
		OutputPath("DECODED_OUTPUT", "x.dif", ModeDecode.TargetExt()))
}

func TestEnsureOutputDir_CreatesParentsAndIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "DECODED_OUTPUT")

	require.NoError(t, EnsureOutputDir(dir))
	require.NoError(t, EnsureOutputDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureOutputDir_BlockedByFile(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "blocker")

	err := EnsureOutputDir(filepath.Join(root, "blocker", "out"))
	assert.ErrorIs(t, err, ErrOutputDirectory)
}

func TestPlanTasks_ExtensionAndStem(t *testing.T) {
	for _, mode := range []Mode{ModeEncode, ModeDecode} {
		job := Job{SourceDir: "src", DestDir: "dst", Mode: mode}
		names := []string{"a.pnm", "b.dif", "noext", "multi.part.jpg"}

		tasks := PlanTasks(job, names)
		require.Len(t, tasks, len(names))
		for i, task := range tasks {
			assert.Equal(t, filepath.Join("src", names[i]), task.InputPath)
			assert.Equal(t, "dst", filepath.Dir(task.OutputPath))
			assert.Equal(t, mode.TargetExt(), filepath.Ext(task.OutputPath))
			assert.Equal(t, Stem(names[i]), Stem(filepath.Base(task.OutputPath)))
		}
	}
}

func TestPlanTasks_Deterministic(t *testing.T) {
	job := Job{SourceDir: "src", DestDir: "dst", Mode: ModeDecode}
	names := []string{"x.dif", "y.dif"}
	assert.Equal(t, PlanTasks(job, names), PlanTasks(job, names))
}

func TestSharedOutputs(t *testing.T) {
	job := Job{SourceDir: "src", DestDir: "dst", Mode: ModeEncode}
	tasks := PlanTasks(job, []string{"a.pnm", "a.ppm", "a.pgm", "b.pnm", "c", "c.pnm"})

	assert.Equal(t, []string{
		filepath.Join("dst", "a.encoded"),
		filepath.Join("dst", "c.encoded"),
	}, SharedOutputs(tasks))
	assert.Empty(t, SharedOutputs(PlanTasks(job, []string{"a.pnm", "b.pnm"})))
}
