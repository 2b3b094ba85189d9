package batch

import "errors"

var (
	// ErrMissingInputDirectory aborts a run before any side effect.
	ErrMissingInputDirectory = errors.New("input directory not found")
	// ErrEmptyInputSet ends a run cleanly with zero invocations.
	ErrEmptyInputSet = errors.New("no matching input files")
	// ErrOutputDirectory aborts a run when the destination cannot be created.
	ErrOutputDirectory = errors.New("cannot create output directory")
	// ErrProcessExecutionFailed marks a single file the codec rejected.
	ErrProcessExecutionFailed = errors.New("codec process failed")
	// ErrCodecBinaryMissing halts a run: the codec could not be launched.
	ErrCodecBinaryMissing = errors.New("codec binary could not be launched")
)
