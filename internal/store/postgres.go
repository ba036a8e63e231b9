package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/sitegen-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses, satisfied by pgxmock
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"insert_session": `INSERT INTO sessions (id, business, industry, status, sources, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
	"get_session":    `SELECT id, business, industry, status, sources, state, result, created_at, updated_at FROM sessions WHERE id = $1`,
	"save_state":     `UPDATE sessions SET state = $1, status = $2, updated_at = $3 WHERE id = $4`,
	"save_result":    `UPDATE sessions SET result = $1, status = $2, updated_at = $3 WHERE id = $4`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool; used by tests with pgxmock.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	business   TEXT NOT NULL,
	industry   TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'active',
	sources    JSONB,
	state      JSONB,
	result     JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);
CREATE INDEX IF NOT EXISTS idx_sessions_industry ON sessions(industry);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateSession(ctx context.Context, business, industryKey string, sources json.RawMessage) (*model.SessionRecord, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO sessions (id, business, industry, status, sources, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, business, industryKey, string(model.SessionActive), blobOrNil(sources), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert session")
	}

	return &model.SessionRecord{
		ID:        id,
		Business:  business,
		Industry:  industryKey,
		Status:    model.SessionActive,
		Sources:   sources,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) GetSession(ctx context.Context, id string) (*model.SessionRecord, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, business, industry, status, sources, state, result, created_at, updated_at FROM sessions WHERE id = $1`,
		id,
	)

	var rec model.SessionRecord
	var sources, state, result []byte
	err := row.Scan(&rec.ID, &rec.Business, &rec.Industry, &rec.Status,
		&sources, &state, &result, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: scan session")
	}
	rec.Sources = sources
	rec.State = state
	rec.Result = result
	return &rec, nil
}

func (s *PostgresStore) SaveState(ctx context.Context, id string, state json.RawMessage, status model.SessionStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET state = $1, status = $2, updated_at = $3 WHERE id = $4`,
		blobOrNil(state), string(status), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save state %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "%s", id)
	}
	return nil
}

func (s *PostgresStore) SaveResult(ctx context.Context, id string, result json.RawMessage) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sessions SET result = $1, status = $2, updated_at = $3 WHERE id = $4`,
		blobOrNil(result), string(model.SessionComplete), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: save result %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "%s", id)
	}
	return nil
}

func (s *PostgresStore) ListSessions(ctx context.Context, filter SessionFilter) ([]model.SessionRecord, error) {
	query := `SELECT id, business, industry, status, sources, state, result, created_at, updated_at FROM sessions WHERE 1=1`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return placeholder(len(args))
	}

	if filter.Status != "" {
		query += ` AND status = ` + arg(string(filter.Status))
	}
	if filter.Industry != "" {
		query += ` AND industry = ` + arg(filter.Industry)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + arg(limit)
	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list sessions")
	}
	defer rows.Close()

	var sessions []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var sources, state, result []byte
		if err := rows.Scan(&rec.ID, &rec.Business, &rec.Industry, &rec.Status,
			&sources, &state, &result, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan session row")
		}
		rec.Sources = sources
		rec.State = state
		rec.Result = result
		sessions = append(sessions, rec)
	}
	return sessions, eris.Wrap(rows.Err(), "postgres: list sessions iterate")
}

func blobOrNil(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

func placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
