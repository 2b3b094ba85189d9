package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/codecbatch/pkg/executor"
)

// CommandArgs builds the codec argument list: mode flag, input, output, then
// any extra flags.
func CommandArgs(mode Mode, task FileTask, extra ...string) []string {
	args := []string{mode.Flag(), task.InputPath, task.OutputPath}
	return append(args, extra...)
}

// invoke runs the codec once and waits for it. The output file is left as
// the codec left it, whatever the result.
func (r *implRunner) invoke(ctx context.Context, mode Mode, task FileTask) InvocationResult {
	start := time.Now()
	out, err := r.executor.Execute(ctx, r.codecPath, CommandArgs(mode, task, r.extraArgs...)...)
	res := InvocationResult{
		Task:     task,
		Duration: time.Since(start),
	}

	if out = strings.TrimSpace(out); out != "" {
		r.logger.Debug(ctx, "%s output:\n%s", r.codecPath, out)
	}

	if err == nil {
		res.Status = StatusSuccess
		return res
	}

	res.Status = StatusFailure
	res.Cause = classify(r.codecPath, err)
	return res
}

func classify(codecPath string, err error) error {
	if errors.Is(err, executor.ErrStart) {
		return fmt.Errorf("%w: %s: %w", ErrCodecBinaryMissing, codecPath, err)
	}
	return fmt.Errorf("%w: %w", ErrProcessExecutionFailed, err)
}
