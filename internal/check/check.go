// Package check verifies that the codec binary and the configured source
// directories are usable before a batch is started.
package check

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nguyentantai21042004/codecbatch/internal/config"
	"github.com/nguyentantai21042004/codecbatch/internal/logger"
	"github.com/nguyentantai21042004/codecbatch/pkg/executor"
)

// ErrCodecNotFound is returned when the codec path does not resolve to an
// executable file.
var ErrCodecNotFound = errors.New("codec binary not found")

// CodecBinary resolves path the way the process launcher will. A path with a
// separator is checked as-is; a bare name is searched on PATH.
func CodecBinary(path string) (string, error) {
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrCodecNotFound, path, err)
	}
	return resolved, nil
}

// RunCheck logs the state of the codec and both source directories. It
// returns false when the codec cannot be run; missing directories only warn.
func RunCheck(ctx context.Context, cfg *config.Config, exe executor.Executor, log logger.Logger) bool {
	log.Info(ctx, "=== System Check ===")

	ok := checkCodec(ctx, cfg.Codec.BinaryPath, exe, log)
	checkDir(ctx, "encode input", cfg.Encode.Input, log)
	checkDir(ctx, "decode input", cfg.Decode.Input, log)
	return ok
}

func checkCodec(ctx context.Context, path string, exe executor.Executor, log logger.Logger) bool {
	resolved, err := CodecBinary(path)
	if err != nil {
		log.Error(ctx, "%v", err)
		return false
	}
	log.Info(ctx, "codec: %s", resolved)

	out, err := exe.Execute(ctx, resolved, "-h")
	if err != nil {
		log.Warn(ctx, "codec found but -h failed: %v", err)
		return true
	}
	if line := firstLine(out); line != "" {
		log.Info(ctx, "codec: %s", line)
	}
	return true
}

func checkDir(ctx context.Context, label, dir string, log logger.Logger) {
	info, err := os.Stat(dir)
	switch {
	case err != nil:
		log.Warn(ctx, "%s %s: %v", label, dir, err)
	case !info.IsDir():
		log.Warn(ctx, "%s %s is not a directory", label, dir)
	default:
		log.Info(ctx, "%s: %s", label, dir)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
