package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_CreateSession(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(pgxmock.AnyArg(), "Acme Plumbing", "plumbing", "active",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	rec, err := s.CreateSession(context.Background(), "Acme Plumbing", "plumbing", json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, model.SessionActive, rec.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetSession(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"id", "business", "industry", "status", "sources", "state", "result", "created_at", "updated_at",
	}).AddRow(
		"sess-1", "Acme Plumbing", "plumbing", model.SessionActive,
		[]byte(`[]`), []byte(`{"step":1}`), []byte(nil), now, now,
	)

	mock.ExpectQuery(`SELECT id, business, industry, status, sources, state, result, created_at, updated_at FROM sessions WHERE id = \$1`).
		WithArgs("sess-1").
		WillReturnRows(rows)

	rec, err := s.GetSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Plumbing", rec.Business)
	assert.Equal(t, json.RawMessage(`{"step":1}`), rec.State)
	assert.Empty(t, rec.Result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetSession_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, business, industry, status, sources, state, result, created_at, updated_at FROM sessions WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetSession(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveState(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE sessions SET state`).
		WithArgs(pgxmock.AnyArg(), "active", pgxmock.AnyArg(), "sess-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.SaveState(context.Background(), "sess-1", json.RawMessage(`{"step":2}`), model.SessionActive)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveState_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE sessions SET state`).
		WithArgs(pgxmock.AnyArg(), "active", pgxmock.AnyArg(), "nonexistent").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.SaveState(context.Background(), "nonexistent", json.RawMessage(`{}`), model.SessionActive)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveResult_CompletesSession(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`UPDATE sessions SET result`).
		WithArgs(pgxmock.AnyArg(), "complete", pgxmock.AnyArg(), "sess-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := s.SaveResult(context.Background(), "sess-1", json.RawMessage(`{"template_id":"classic-local"}`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListSessions_Filters(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"id", "business", "industry", "status", "sources", "state", "result", "created_at", "updated_at",
	}).AddRow(
		"sess-1", "Acme Plumbing", "plumbing", model.SessionComplete,
		[]byte(nil), []byte(nil), []byte(`{}`), now, now,
	)

	mock.ExpectQuery(`SELECT .+ FROM sessions WHERE 1=1 AND status = \$1 AND industry = \$2 ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("complete", "plumbing", 100).
		WillReturnRows(rows)

	out, err := s.ListSessions(context.Background(), SessionFilter{
		Status:   model.SessionComplete,
		Industry: "plumbing",
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "sess-1", out[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
