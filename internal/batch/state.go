package batch

import "fmt"

// State is a step of a run.
type State string

const (
	StateInit            State = "INIT"
	StateValidatingInput State = "VALIDATING_INPUT"
	StateAborted         State = "ABORTED"
	StateEnsuringOutput  State = "ENSURING_OUTPUT"
	StateIterating       State = "ITERATING"
	StateInvoking        State = "INVOKING"
	StateHalted          State = "HALTED"
	StateSummarizing     State = "SUMMARIZING"
	StateDone            State = "DONE"
)

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateInit:
		return to == StateValidatingInput
	case StateValidatingInput:
		return to == StateAborted || to == StateEnsuringOutput || to == StateSummarizing
	case StateEnsuringOutput:
		return to == StateIterating || to == StateAborted
	case StateIterating:
		return to == StateInvoking || to == StateSummarizing
	case StateInvoking:
		return to == StateIterating || to == StateHalted
	case StateAborted, StateHalted:
		return to == StateSummarizing
	case StateSummarizing:
		return to == StateDone
	default:
		return false
	}
}

// machine records the path a run takes. A disallowed transition panics.
type machine struct {
	cur     State
	visited []State
}

func newMachine() *machine {
	return &machine{cur: StateInit, visited: []State{StateInit}}
}

func (m *machine) to(next State) {
	if !isAllowedTransition(m.cur, next) {
		panic(fmt.Sprintf("batch: disallowed transition %s -> %s", m.cur, next))
	}
	m.cur = next
	m.visited = append(m.visited, next)
}
