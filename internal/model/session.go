package model

import (
	"encoding/json"
	"time"
)

// SessionStatus tracks a persisted session's lifecycle.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionComplete  SessionStatus = "complete"
	SessionAbandoned SessionStatus = "abandoned"
)

// SessionRecord is the persisted form of one onboarding session: the
// serialized FlowState blob plus the final site config once produced.
// The core only defines the blob contract; the store decides nothing
// about its contents.
type SessionRecord struct {
	ID        string          `json:"id"`
	Business  string          `json:"business"`
	Industry  string          `json:"industry"`
	Status    SessionStatus   `json:"status"`
	Sources   json.RawMessage `json:"sources,omitempty"`
	State     json.RawMessage `json:"state,omitempty"`
	Result    json.RawMessage `json:"result,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
