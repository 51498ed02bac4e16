package issueregistry

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultPostgresTable = "forge_issued_licenses"

// validIdentifier matches safe PostgreSQL identifiers (letters, digits, underscores).
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresOption configures a PostgresRegistry.
type PostgresOption func(*PostgresRegistry)

// WithTableName sets the PostgreSQL table name. Default: "forge_issued_licenses".
func WithTableName(name string) PostgresOption {
	return func(r *PostgresRegistry) {
		r.tableName = name
	}
}

// PostgresRegistry implements Registry using PostgreSQL.
type PostgresRegistry struct {
	pool      *pgxpool.Pool
	tableName string
}

// NewPostgresRegistry creates a new PostgreSQL-backed issue registry.
// It auto-creates the table and indexes on initialization.
func NewPostgresRegistry(ctx context.Context, pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresRegistry, error) {
	r := &PostgresRegistry{
		pool:      pool,
		tableName: defaultPostgresTable,
	}
	for _, opt := range opts {
		opt(r)
	}
	if !validIdentifier.MatchString(r.tableName) {
		return nil, fmt.Errorf("invalid table name %q: must match [a-zA-Z_][a-zA-Z0-9_]*", r.tableName)
	}
	if err := r.ensureTable(ctx); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	return r, nil
}

func (r *PostgresRegistry) ensureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id           TEXT PRIMARY KEY,
			format       TEXT NOT NULL,
			product      TEXT NOT NULL DEFAULT '',
			organisation TEXT NOT NULL DEFAULT '',
			token_digest TEXT NOT NULL,
			issued_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_%s_organisation_issued
			ON %s (organisation, issued_at);
	`, r.tableName, r.tableName, r.tableName)
	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *PostgresRegistry) Record(ctx context.Context, issue Issue) (*Issue, error) {
	issue = normalize(issue)
	query := fmt.Sprintf(`
		INSERT INTO %s (id, format, product, organisation, token_digest, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tableName)
	_, err := r.pool.Exec(ctx, query,
		issue.ID, issue.Format, issue.Product, issue.Organisation, issue.TokenDigest, issue.IssuedAt)
	if err != nil {
		return nil, fmt.Errorf("record issue: %w", err)
	}
	return &issue, nil
}

func (r *PostgresRegistry) Get(ctx context.Context, id string) (*Issue, error) {
	query := fmt.Sprintf(`
		SELECT id, format, product, organisation, token_digest, issued_at
		FROM %s WHERE id = $1
	`, r.tableName)
	var issue Issue
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&issue.ID, &issue.Format, &issue.Product, &issue.Organisation, &issue.TokenDigest, &issue.IssuedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get issue: %w", err)
	}
	return &issue, nil
}

func (r *PostgresRegistry) List(ctx context.Context, organisation string) ([]Issue, error) {
	query := fmt.Sprintf(`
		SELECT id, format, product, organisation, token_digest, issued_at
		FROM %s WHERE organisation = $1
		ORDER BY issued_at DESC
	`, r.tableName)
	rows, err := r.pool.Query(ctx, query, organisation)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var issues []Issue
	for rows.Next() {
		var issue Issue
		if err := rows.Scan(&issue.ID, &issue.Format, &issue.Product,
			&issue.Organisation, &issue.TokenDigest, &issue.IssuedAt); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return issues, nil
}

func (r *PostgresRegistry) Count(ctx context.Context, organisation string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE organisation = $1`, r.tableName)
	var count int
	if err := r.pool.QueryRow(ctx, query, organisation).Scan(&count); err != nil {
		return 0, fmt.Errorf("count issues: %w", err)
	}
	return count, nil
}

func (r *PostgresRegistry) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	query := fmt.Sprintf(`DELETE FROM %s WHERE issued_at < $1`, r.tableName)
	tag, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune issues: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *PostgresRegistry) Close(_ context.Context) error {
	r.pool.Close()
	return nil
}
