package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/codecbatch/internal/batch"
	"github.com/nguyentantai21042004/codecbatch/internal/config"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	logLevel   string
	codecPath  string
	verbose    bool
)

// errRunFailed reports a run that already logged its own failure.
var errRunFailed = errors.New("run failed")

var rootCmd = &cobra.Command{
	Use:   "codecbatch",
	Short: "Batch driver for the PNM/DIF image codec",
	Long: `codecbatch - batch driver for the PNM/DIF image codec

Runs the codec binary once per file over a whole directory, one file at a
time. A failing file is reported and skipped; a missing codec stops the run.

Examples:
  codecbatch encode                      # ../IMAGES_TESTS -> ENCODED_RESULTS
  codecbatch decode --input difs         # difs/*.dif -> DECODED_OUTPUT
  codecbatch watch decode                # decode new .dif files as they appear
  codecbatch check                       # verify the codec binary`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&codecPath, "codec", "", "Path to the codec binary")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Pass -v to the codec")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("codecbatch {{.Version}}\n")
}

// dirFlags are the per-command overrides of a mode's config section.
type dirFlags struct {
	input   string
	output  string
	include string
	suffix  string
}

func (f *dirFlags) register(cmd *cobra.Command, mode batch.Mode) {
	cmd.Flags().StringVar(&f.input, "input", "", "Source directory")
	cmd.Flags().StringVar(&f.output, "output", "", "Destination directory")
	if mode == batch.ModeDecode {
		cmd.Flags().StringVar(&f.suffix, "suffix", "", "Suffix of files to decode")
	} else {
		cmd.Flags().StringVar(&f.include, "include", "", "Glob of files to encode")
	}
}

// globalFlags collects the persistent flag values.
type globalFlags struct {
	configPath string
	explicit   bool
	logLevel   string
	codecPath  string
	verbose    bool
}

func currentGlobals(cmd *cobra.Command) globalFlags {
	return globalFlags{
		configPath: configPath,
		explicit:   cmd.Flags().Changed("config"),
		logLevel:   logLevel,
		codecPath:  codecPath,
		verbose:    verbose,
	}
}

// loadConfig reads the config file and applies flag overrides for mode. A
// missing default config file falls back to the built-in defaults; a missing
// file named with --config is an error.
func loadConfig(g globalFlags, mode batch.Mode, d dirFlags) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.explicit {
		cfg, err = config.Load(g.configPath)
	} else {
		cfg, err = config.LoadOptional(g.configPath)
	}
	if err != nil {
		return nil, err
	}

	if g.logLevel != "" {
		cfg.Logging.Level = g.logLevel
	}
	if g.codecPath != "" {
		cfg.Codec.BinaryPath = g.codecPath
	}
	if g.verbose {
		cfg.Codec.Verbose = true
	}

	if mode == batch.ModeDecode {
		setIf(&cfg.Decode.Input, d.input)
		setIf(&cfg.Decode.Output, d.output)
		setIf(&cfg.Decode.Suffix, d.suffix)
	} else {
		setIf(&cfg.Encode.Input, d.input)
		setIf(&cfg.Encode.Output, d.output)
		setIf(&cfg.Encode.Include, d.include)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
