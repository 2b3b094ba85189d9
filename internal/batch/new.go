package batch

import (
	"github.com/nguyentantai21042004/codecbatch/internal/config"
	"github.com/nguyentantai21042004/codecbatch/internal/logger"
	"github.com/nguyentantai21042004/codecbatch/pkg/executor"
)

type implRunner struct {
	codecPath string
	extraArgs []string
	executor  executor.Executor
	logger    logger.Logger
	recorder  Recorder
}

// New creates a Runner for the configured codec. rec may be nil.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger, rec Recorder) Runner {
	var extra []string
	if cfg.Codec.Verbose {
		extra = append(extra, "-v")
	}
	return &implRunner{
		codecPath: cfg.Codec.BinaryPath,
		extraArgs: extra,
		executor:  exec,
		logger:    log,
		recorder:  rec,
	}
}
