package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/codecbatch/internal/batch"
	"github.com/nguyentantai21042004/codecbatch/internal/config"
	"github.com/nguyentantai21042004/codecbatch/internal/history"
	"github.com/nguyentantai21042004/codecbatch/internal/logger"
	"github.com/nguyentantai21042004/codecbatch/pkg/executor"
	"github.com/spf13/cobra"
)

var (
	encodeFlags dirFlags
	decodeFlags dirFlags
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode every regular file of the source directory",
	Long: `Run '<codec> -c <input> <output>' for every regular file of the
encode input directory. Outputs are named <stem>.encoded.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBatch(cmd, batch.ModeEncode, encodeFlags)
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode every .dif file of the source directory",
	Long: `Run '<codec> -d <input> <output>' for every file of the decode
input directory ending in the configured suffix. Outputs are named <stem>.pnm.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runBatch(cmd, batch.ModeDecode, decodeFlags)
	},
}

func init() {
	encodeFlags.register(encodeCmd, batch.ModeEncode)
	decodeFlags.register(decodeCmd, batch.ModeDecode)
	rootCmd.AddCommand(encodeCmd, decodeCmd)
}

func runBatch(cmd *cobra.Command, mode batch.Mode, d dirFlags) error {
	cfg, err := loadConfig(currentGlobals(cmd), mode, d)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Logging.Level)

	// The runner finishes the in-flight file before honouring the signal.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec, closeRec, err := openRecorder(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRec()

	runner := batch.New(cfg, executor.New(), log, rec)
	return summaryErr(runner.Run(ctx, batch.NewJob(cfg, mode)))
}

// summaryErr maps a finished run to the process exit status.
func summaryErr(s batch.Summary) error {
	if s.OK() {
		return nil
	}
	return errRunFailed
}

// openRecorder opens the history store when enabled. The returned recorder
// is nil otherwise.
func openRecorder(ctx context.Context, cfg *config.Config, log logger.Logger) (batch.Recorder, func(), error) {
	if !cfg.History.Enabled {
		return nil, func() {}, nil
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, err
	}
	log.Debug(ctx, "Recording run history to %s", cfg.History.Path)
	return store, func() {
		if err := store.Close(); err != nil {
			log.Warn(ctx, "Failed to close history store: %v", err)
		}
	}, nil
}
