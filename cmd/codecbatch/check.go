package main

import (
	"github.com/nguyentantai21042004/codecbatch/internal/batch"
	"github.com/nguyentantai21042004/codecbatch/internal/check"
	"github.com/nguyentantai21042004/codecbatch/internal/logger"
	"github.com/nguyentantai21042004/codecbatch/pkg/executor"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the codec binary and source directories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(currentGlobals(cmd), batch.ModeEncode, dirFlags{})
		if err != nil {
			return err
		}
		log := logger.New(cfg.Logging.Level)
		if !check.RunCheck(cmd.Context(), cfg, executor.New(), log) {
			return errRunFailed
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
