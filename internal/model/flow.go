package model

import "time"

// FlowPhase is the orchestrator's state-machine phase.
type FlowPhase string

const (
	PhasePlanning       FlowPhase = "planning"
	PhaseAwaitingAnswer FlowPhase = "awaiting_answer"
	PhaseComplete       FlowPhase = "complete"
)

// Answer records one integrated answer.
type Answer struct {
	QuestionID string    `json:"question_id"`
	Value      string    `json:"value"`
	Step       int       `json:"step"`
	AnsweredAt time.Time `json:"answered_at"`
}

// SkipEntry records a question advanced without an answer. An "unsure"
// answer lands here too: recorded, not inferred, never re-asked.
type SkipEntry struct {
	QuestionID string `json:"question_id"`
	Reason     string `json:"reason"`
	Step       int    `json:"step"`
}

// InferredFact is a fact derived from an answer rather than stated by it.
type InferredFact struct {
	Key        string  `json:"key"`
	Value      any     `json:"value"`
	Confidence float64 `json:"confidence"`
	FromAnswer string  `json:"from_answer"` // question id the inference came from
}

// StepSnapshot captures enough of a step to support GoBack. The asked log
// is deliberately not snapshotted: rewinding never refunds budget.
type StepSnapshot struct {
	Current    string `json:"current"`
	BatchIndex int    `json:"batch_index"`
}

// FlowState is the full per-session orchestration state. It is replaced
// wholesale on each transition and serializes to an opaque blob so callers
// can pause/resume sessions across requests.
type FlowState struct {
	SessionID string    `json:"session_id"`
	Industry  string    `json:"industry"`
	Phase     FlowPhase `json:"phase"`
	Step      int       `json:"step"`

	// StartTier is the quality tier at session start; it bounds how many
	// questions the whole flow may ever show.
	StartTier QualityTier `json:"start_tier"`

	// Batch is the currently planned question ids; Current indexes into it
	// by id, not position, because follow-ups interleave.
	Batch      []string `json:"batch,omitempty"`
	BatchIndex int      `json:"batch_index"`
	Current    string   `json:"current,omitempty"`
	FollowUp   string   `json:"follow_up,omitempty"`

	// Remaining holds surviving candidate ids not yet asked or suppressed.
	Remaining  []string `json:"remaining,omitempty"`
	Asked      []string `json:"asked,omitempty"`
	Suppressed []string `json:"suppressed,omitempty"`

	Answers   map[string]Answer `json:"answers,omitempty"`
	Inferred  []InferredFact    `json:"inferred,omitempty"`
	Skips     []SkipEntry       `json:"skips,omitempty"`
	History   []StepSnapshot    `json:"history,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ShownCount is the number of questions presented so far.
func (s FlowState) ShownCount() int {
	return len(s.Asked)
}

// WasSuppressed reports whether the question id was ever suppressed this
// session. Once suppressed, always suppressed.
func (s FlowState) WasSuppressed(id string) bool {
	for _, q := range s.Suppressed {
		if q == id {
			return true
		}
	}
	return false
}
