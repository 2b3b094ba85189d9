package batch

import "time"

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeCompleted   Outcome = "completed"
	OutcomeEmpty       Outcome = "empty"
	OutcomeAborted     Outcome = "aborted"
	OutcomeHalted      Outcome = "halted"
	OutcomeInterrupted Outcome = "interrupted"
)

// Summary is the audit record of one run.
type Summary struct {
	RunID      string
	Mode       Mode
	SourceDir  string
	DestDir    string
	StartedAt  time.Time
	FinishedAt time.Time

	Outcome Outcome
	// Err is the run-level cause for aborted, halted and interrupted runs.
	Err error

	Discovered int
	Results    []InvocationResult
	States     []State
}

// Attempted counts invocations actually made.
func (s Summary) Attempted() int {
	return len(s.Results)
}

// Succeeded counts invocations that exited zero.
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if !r.Failed() {
			n++
		}
	}
	return n
}

// Failed counts invocations that did not succeed.
func (s Summary) Failed() int {
	return s.Attempted() - s.Succeeded()
}

// NotAttempted counts discovered files left in the queue by a halt or
// interrupt.
func (s Summary) NotAttempted() int {
	return s.Discovered - s.Attempted()
}

// OK reports whether every discovered file was converted.
func (s Summary) OK() bool {
	switch s.Outcome {
	case OutcomeCompleted, OutcomeEmpty:
		return s.Failed() == 0
	default:
		return false
	}
}
