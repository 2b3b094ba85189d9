package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/codecbatch/internal/config"
)

// Mode selects the codec direction.
type Mode int

const (
	ModeEncode Mode = iota
	ModeDecode
)

// ParseMode accepts "encode" or "decode".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "encode":
		return ModeEncode, nil
	case "decode":
		return ModeDecode, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want encode or decode)", s)
	}
}

func (m Mode) String() string {
	if m == ModeDecode {
		return "decode"
	}
	return "encode"
}

// Flag is the codec's mode switch.
func (m Mode) Flag() string {
	if m == ModeDecode {
		return "-d"
	}
	return "-c"
}

// TargetExt is the extension given to every output file.
func (m Mode) TargetExt() string {
	if m == ModeDecode {
		return ".pnm"
	}
	return ".encoded"
}

func (m Mode) gerund() string {
	if m == ModeDecode {
		return "Decoding"
	}
	return "Encoding"
}

// Job is one directory-to-directory run. It is not modified once Run starts.
type Job struct {
	SourceDir string
	DestDir   string
	Mode      Mode
	Selector  Selector
}

// NewJob builds the Job for mode from the configured paths and filters.
func NewJob(cfg *config.Config, mode Mode) Job {
	if mode == ModeDecode {
		return Job{
			SourceDir: cfg.Decode.Input,
			DestDir:   cfg.Decode.Output,
			Mode:      ModeDecode,
			Selector:  SuffixSelector(cfg.Decode.Suffix),
		}
	}
	return Job{
		SourceDir: cfg.Encode.Input,
		DestDir:   cfg.Encode.Output,
		Mode:      ModeEncode,
		Selector:  RegularFileSelector(cfg.Encode.Include),
	}
}

// ForFile narrows the job to the single source entry called name.
func (j Job) ForFile(name string) Job {
	sel := j.Selector
	j.Selector = func(dir string, entry fs.DirEntry) bool {
		return entry.Name() == name && sel(dir, entry)
	}
	return j
}

// Accepts reports whether the source entry called name passes the selector.
func (j Job) Accepts(name string) bool {
	info, err := os.Lstat(filepath.Join(j.SourceDir, name))
	if err != nil {
		return false
	}
	return j.Selector(j.SourceDir, fs.FileInfoToDirEntry(info))
}

// FileTask maps one input file to its output file.
type FileTask struct {
	InputPath  string
	OutputPath string
}

// Status is the result of one invocation.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

func (s Status) String() string {
	if s == StatusFailure {
		return "failure"
	}
	return "success"
}

// InvocationResult is the outcome of running the codec on one FileTask.
// Cause wraps ErrProcessExecutionFailed or ErrCodecBinaryMissing on failure.
type InvocationResult struct {
	Task     FileTask
	Status   Status
	Cause    error
	Duration time.Duration
}

// Failed reports whether the codec did not convert the file.
func (r InvocationResult) Failed() bool {
	return r.Status == StatusFailure
}
