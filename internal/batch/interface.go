package batch

import "context"

// Runner executes Jobs one file at a time.
type Runner interface {
	Run(ctx context.Context, job Job) Summary
}

// Recorder receives every finished Summary. Implementations must not be
// consulted to skip work in later runs.
type Recorder interface {
	Record(ctx context.Context, s Summary) error
}
