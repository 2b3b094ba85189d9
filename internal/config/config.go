package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/nguyentantai21042004/codecbatch/internal/logger"
)

type Config struct {
	Codec   CodecConfig   `yaml:"codec"`
	Encode  EncodeConfig  `yaml:"encode"`
	Decode  DecodeConfig  `yaml:"decode"`
	Logging LoggingConfig `yaml:"logging"`
	History HistoryConfig `yaml:"history"`
	Watch   WatchConfig   `yaml:"watch"`
}

type CodecConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Verbose    bool   `yaml:"verbose"`
}

type EncodeConfig struct {
	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
	Include string `yaml:"include"`
}

type DecodeConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Suffix string `yaml:"suffix"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type WatchConfig struct {
	Settle time.Duration `yaml:"settle"`
}

// Default returns the built-in layout: the codec next to the working
// directory, test images one level up.
func Default() Config {
	return Config{
		Codec: CodecConfig{
			BinaryPath: "./main",
		},
		Encode: EncodeConfig{
			Input:   "../IMAGES_TESTS",
			Output:  "ENCODED_RESULTS",
			Include: "*",
		},
		Decode: DecodeConfig{
			Input:  "../IMAGES_DIFS",
			Output: "DECODED_OUTPUT",
			Suffix: ".dif",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Path: "data/history.db",
		},
		Watch: WatchConfig{
			Settle: 500 * time.Millisecond,
		},
	}
}

func (c *Config) Validate() error {
	if c.Codec.BinaryPath == "" {
		return fmt.Errorf("codec.binary_path is required")
	}
	if c.Encode.Input == "" {
		return fmt.Errorf("encode.input is required")
	}
	if c.Encode.Output == "" {
		return fmt.Errorf("encode.output is required")
	}
	if c.Decode.Input == "" {
		return fmt.Errorf("decode.input is required")
	}
	if c.Decode.Output == "" {
		return fmt.Errorf("decode.output is required")
	}
	if samePath(c.Encode.Input, c.Encode.Output) {
		return fmt.Errorf("encode.output must differ from encode.input")
	}
	if samePath(c.Decode.Input, c.Decode.Output) {
		return fmt.Errorf("decode.output must differ from decode.input")
	}
	if c.Watch.Settle < 0 {
		return fmt.Errorf("watch.settle must not be negative")
	}

	if c.Encode.Include == "" {
		c.Encode.Include = "*"
	}
	if !doublestar.ValidatePattern(c.Encode.Include) {
		return fmt.Errorf("encode.include: invalid pattern %q", c.Encode.Include)
	}
	if c.Decode.Suffix == "" {
		c.Decode.Suffix = ".dif"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if !logger.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	if c.History.Path == "" {
		c.History.Path = "data/history.db"
	}

	return nil
}

func samePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
