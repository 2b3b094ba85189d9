package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/codecbatch/internal/batch"
	"github.com/nguyentantai21042004/codecbatch/internal/logger"
	"github.com/nguyentantai21042004/codecbatch/internal/watcher"
	"github.com/nguyentantai21042004/codecbatch/pkg/executor"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	watchFlags    dirFlags
	watchExisting bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <encode|decode>",
	Short: "Convert new files as they appear in the source directory",
	Long: `Watch the source directory of a mode and run the codec on every newly
created matching file, one at a time. A missing codec stops the watcher.

Examples:
  codecbatch watch decode
  codecbatch watch encode --existing     # convert current files first`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"encode", "decode"},
	RunE:      runWatchCmd,
}

func init() {
	watchCmd.Flags().StringVar(&watchFlags.input, "input", "", "Source directory")
	watchCmd.Flags().StringVar(&watchFlags.output, "output", "", "Destination directory")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Run a full batch over existing files before watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	mode, err := batch.ParseMode(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(currentGlobals(cmd), mode, watchFlags)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec, closeRec, err := openRecorder(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRec()

	runner := batch.New(cfg, executor.New(), log, rec)
	job := batch.NewJob(cfg, mode)

	w, err := watcher.New(job.SourceDir, job.Accepts, func(ctx context.Context, name string) error {
		s := runner.Run(ctx, job.ForFile(name))
		if s.Outcome == batch.OutcomeHalted {
			return s.Err
		}
		return nil
	}, log, cfg.Watch.Settle)
	if err != nil {
		return fmt.Errorf("watch %s: %w", job.SourceDir, err)
	}
	defer w.Stop()

	// Files created while the initial batch runs are queued by the watcher
	// and converted again afterwards.
	if watchExisting {
		s := runner.Run(ctx, job)
		if s.Outcome == batch.OutcomeHalted || s.Outcome == batch.OutcomeAborted {
			return errRunFailed
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return w.Start(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		if ctx.Err() != nil {
			log.Info(ctx, "Shutdown signal received, stopping watcher")
		}
		return nil
	})

	log.Info(ctx, "Watching %s for %s input (Ctrl+C to stop)", job.SourceDir, mode)
	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	if err != nil {
		log.Error(ctx, "Watcher stopped: %v", err)
		return errRunFailed
	}
	return nil
}
