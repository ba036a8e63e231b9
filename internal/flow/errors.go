package flow

import "github.com/rotisserie/eris"

// Usage errors: the only error class surfaced to callers. They indicate a
// protocol violation in the integration layer, not a data problem.
var (
	// ErrWrongQuestion is returned when an answer's question id does not
	// match the current question.
	ErrWrongQuestion = eris.New("flow: answer does not match current question")

	// ErrFlowComplete is returned when answering or skipping after the
	// session reached Complete.
	ErrFlowComplete = eris.New("flow: session already complete")

	// ErrNotAwaiting is returned when answering while no question is
	// pending.
	ErrNotAwaiting = eris.New("flow: no question awaiting an answer")
)
