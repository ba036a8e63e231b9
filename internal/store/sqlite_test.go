package store

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sitegen-cli/internal/model"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLiteSessionLifecycle(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	sources := json.RawMessage(`[{"kind":"profile"}]`)
	rec, err := st.CreateSession(ctx, "Acme Plumbing", "plumbing", sources)
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	assert.Equal(t, model.SessionActive, rec.Status)

	got, err := st.GetSession(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Plumbing", got.Business)
	assert.Equal(t, "plumbing", got.Industry)
	assert.JSONEq(t, string(sources), string(got.Sources))
	assert.Empty(t, got.State)
	assert.Empty(t, got.Result)

	state := json.RawMessage(`{"phase":"awaiting_answer","step":2}`)
	require.NoError(t, st.SaveState(ctx, rec.ID, state, model.SessionActive))

	got, err = st.GetSession(ctx, rec.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(state), string(got.State))
	assert.Equal(t, model.SessionActive, got.Status)

	result := json.RawMessage(`{"template_id":"classic-local"}`)
	require.NoError(t, st.SaveResult(ctx, rec.ID, result))

	got, err = st.GetSession(ctx, rec.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(result), string(got.Result))
	assert.Equal(t, model.SessionComplete, got.Status, "saving a result completes the session")
}

func TestSQLiteGetSessionNotFound(t *testing.T) {
	st := newTestSQLite(t)

	_, err := st.GetSession(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSaveStateNotFound(t *testing.T) {
	st := newTestSQLite(t)

	err := st.SaveState(context.Background(), "no-such-id", json.RawMessage(`{}`), model.SessionActive)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteListSessions(t *testing.T) {
	st := newTestSQLite(t)
	ctx := context.Background()

	a, err := st.CreateSession(ctx, "Acme Plumbing", "plumbing", nil)
	require.NoError(t, err)
	_, err = st.CreateSession(ctx, "Cool Air", "hvac", nil)
	require.NoError(t, err)

	require.NoError(t, st.SaveResult(ctx, a.ID, json.RawMessage(`{}`)))

	all, err := st.ListSessions(ctx, SessionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	complete, err := st.ListSessions(ctx, SessionFilter{Status: model.SessionComplete})
	require.NoError(t, err)
	require.Len(t, complete, 1)
	assert.Equal(t, a.ID, complete[0].ID)

	hvac, err := st.ListSessions(ctx, SessionFilter{Industry: "hvac"})
	require.NoError(t, err)
	require.Len(t, hvac, 1)
	assert.Equal(t, "Cool Air", hvac[0].Business)

	limited, err := st.ListSessions(ctx, SessionFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
