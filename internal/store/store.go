// Package store persists onboarding sessions behind a single interface with
// Postgres and SQLite implementations. The flow state and site config are
// opaque JSON blobs; the store never inspects them.
package store

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// ErrNotFound is returned when a session id does not exist.
var ErrNotFound = eris.New("store: session not found")

// SessionFilter specifies criteria for listing sessions.
type SessionFilter struct {
	Status   model.SessionStatus `json:"status,omitempty"`
	Industry string              `json:"industry,omitempty"`
	Limit    int                 `json:"limit,omitempty"`
	Offset   int                 `json:"offset,omitempty"`
}

// Store defines the persistence interface for onboarding sessions.
type Store interface {
	CreateSession(ctx context.Context, business, industryKey string, sources json.RawMessage) (*model.SessionRecord, error)
	GetSession(ctx context.Context, id string) (*model.SessionRecord, error)
	SaveState(ctx context.Context, id string, state json.RawMessage, status model.SessionStatus) error
	SaveResult(ctx context.Context, id string, result json.RawMessage) error
	ListSessions(ctx context.Context, filter SessionFilter) ([]model.SessionRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
