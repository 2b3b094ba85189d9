package batch

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Run executes job sequentially and always returns a Summary, including for
// runs that abort before touching the filesystem.
//
// Cancelling ctx stops the run between files; the invocation in flight is
// never interrupted.
func (r *implRunner) Run(ctx context.Context, job Job) Summary {
	s := Summary{
		RunID:     uuid.New().String(),
		Mode:      job.Mode,
		SourceDir: job.SourceDir,
		DestDir:   job.DestDir,
		StartedAt: time.Now(),
	}
	m := newMachine()

	m.to(StateValidatingInput)
	names, err := Enumerate(job.SourceDir, job.Selector)
	switch {
	case errors.Is(err, ErrEmptyInputSet):
		r.logger.Warn(ctx, "No files to %s: %v", job.Mode, err)
		s.Outcome = OutcomeEmpty
		return r.finish(ctx, m, s)
	case err != nil:
		r.logger.Error(ctx, "Error: %v", err)
		m.to(StateAborted)
		s.Outcome, s.Err = OutcomeAborted, err
		return r.finish(ctx, m, s)
	}
	s.Discovered = len(names)

	m.to(StateEnsuringOutput)
	if err := EnsureOutputDir(job.DestDir); err != nil {
		r.logger.Error(ctx, "Error: %v", err)
		m.to(StateAborted)
		s.Outcome, s.Err = OutcomeAborted, err
		return r.finish(ctx, m, s)
	}

	tasks := PlanTasks(job, names)
	for _, out := range SharedOutputs(tasks) {
		r.logger.Warn(ctx, "Several inputs map to '%s', later files overwrite earlier ones", out)
	}
	r.logger.Info(ctx, "Found %d files in '%s'. Starting %s...", len(tasks), job.SourceDir, job.Mode)

	m.to(StateIterating)
	invokeCtx := context.WithoutCancel(ctx)
	for i, task := range tasks {
		if ctx.Err() != nil {
			r.logger.Warn(ctx, "Interrupted, %d files not attempted", len(tasks)-i)
			s.Outcome, s.Err = OutcomeInterrupted, ctx.Err()
			break
		}

		m.to(StateInvoking)
		r.logger.Info(ctx, "[%d/%d] %s: %s -> %s", i+1, len(tasks), job.Mode.gerund(), task.InputPath, task.OutputPath)

		res := r.invoke(invokeCtx, job.Mode, task)
		s.Results = append(s.Results, res)

		if errors.Is(res.Cause, ErrCodecBinaryMissing) {
			r.logger.Error(ctx, "Error: %v", res.Cause)
			m.to(StateHalted)
			s.Outcome, s.Err = OutcomeHalted, res.Cause
			break
		}
		if res.Failed() {
			r.logger.Error(ctx, "Failed to %s %s: %v", job.Mode, filepath.Base(task.InputPath), res.Cause)
		}

		m.to(StateIterating)
	}

	if s.Outcome == "" {
		s.Outcome = OutcomeCompleted
	}
	return r.finish(ctx, m, s)
}

func (r *implRunner) finish(ctx context.Context, m *machine, s Summary) Summary {
	m.to(StateSummarizing)
	s.FinishedAt = time.Now()
	r.logSummary(ctx, s)

	// An interrupted run is still recorded.
	if r.recorder != nil {
		if err := r.recorder.Record(context.WithoutCancel(ctx), s); err != nil {
			r.logger.Warn(ctx, "Failed to record run %s: %v", s.RunID, err)
		}
	}

	m.to(StateDone)
	s.States = m.visited
	return s
}

func (r *implRunner) logSummary(ctx context.Context, s Summary) {
	r.logger.Info(ctx, "==============================")
	switch s.Outcome {
	case OutcomeAborted:
		r.logger.Error(ctx, "Run aborted before processing, nothing written to '%s'", s.DestDir)
		return
	case OutcomeHalted:
		r.logger.Error(ctx, "Run halted: codec unavailable after %d of %d files, %d not attempted",
			s.Attempted(), s.Discovered, s.NotAttempted())
	case OutcomeInterrupted:
		r.logger.Warn(ctx, "Run interrupted after %d of %d files", s.Attempted(), s.Discovered)
	}
	r.logger.Info(ctx, "Processing complete. %d files processed (%d succeeded, %d failed) into '%s'",
		s.Discovered, s.Succeeded(), s.Failed(), s.DestDir)
	r.logger.Debug(ctx, "Run %s finished in %s", s.RunID, s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond))
}
