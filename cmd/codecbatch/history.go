package main

import (
	"fmt"
	"io"
	"time"

	"github.com/nguyentantai21042004/codecbatch/internal/batch"
	"github.com/nguyentantai21042004/codecbatch/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded runs",
	Long: `List recent runs from the history database, newest first.
With a run ID, list every file of that run.

Examples:
  codecbatch history
  codecbatch history --limit 5
  codecbatch history 3f6c2a9e-...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryCmd,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(currentGlobals(cmd), batch.ModeEncode, dirFlags{})
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		invs, err := store.Invocations(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(invs) == 0 {
			return fmt.Errorf("no invocations recorded for run %s", args[0])
		}
		printInvocations(out, invs)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return nil
	}
	printRuns(out, runs)
	return nil
}

func printRuns(w io.Writer, runs []history.Run) {
	fmt.Fprintf(w, "%-36s  %-6s  %-11s  %5s  %5s  %5s  %s\n",
		"RUN", "MODE", "OUTCOME", "FOUND", "OK", "FAIL", "STARTED")
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-6s  %-11s  %5d  %5d  %5d  %s\n",
			r.ID, r.Mode, r.Outcome, r.Discovered, r.Succeeded, r.Failed,
			r.StartedAt.Local().Format(time.DateTime))
		if r.Error != "" {
			fmt.Fprintf(w, "    %s\n", r.Error)
		}
	}
}

func printInvocations(w io.Writer, invs []history.Invocation) {
	for _, inv := range invs {
		fmt.Fprintf(w, "%3d  %-7s  %8s  %s -> %s\n",
			inv.Seq, inv.Status, inv.Duration.Round(time.Millisecond), inv.InputPath, inv.OutputPath)
		if inv.Cause != "" {
			fmt.Fprintf(w, "     %s\n", inv.Cause)
		}
	}
}
