package executor

import "context"

//go:generate mockgen -source=interface.go -destination=mocks/executor.go -package=mocks

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}
