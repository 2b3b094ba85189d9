package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureOutputDir creates dir and any missing parents. Safe to repeat.
func EnsureOutputDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputDirectory, err)
	}
	return nil
}

// OutputPath is destDir/<stem of name><ext>.
func OutputPath(destDir, name, ext string) string {
	return filepath.Join(destDir, Stem(name)+ext)
}

// Stem drops the final extension of name. Leading dots never start an
// extension, so ".profile" and "..x" are returned unchanged.
func Stem(name string) string {
	dot := strings.LastIndex(name, ".")
	lead := len(name) - len(strings.TrimLeft(name, "."))
	if dot < lead {
		return name
	}
	return name[:dot]
}

// PlanTasks maps each enumerated name to its FileTask.
func PlanTasks(job Job, names []string) []FileTask {
	tasks := make([]FileTask, 0, len(names))
	for _, name := range names {
		tasks = append(tasks, FileTask{
			InputPath:  filepath.Join(job.SourceDir, name),
			OutputPath: OutputPath(job.DestDir, name, job.Mode.TargetExt()),
		})
	}
	return tasks
}

// SharedOutputs returns, in task order, each output path claimed by more than
// one task.
func SharedOutputs(tasks []FileTask) []string {
	seen := make(map[string]int, len(tasks))
	var shared []string
	for _, t := range tasks {
		seen[t.OutputPath]++
		if seen[t.OutputPath] == 2 {
			shared = append(shared, t.OutputPath)
		}
	}
	return shared
}
