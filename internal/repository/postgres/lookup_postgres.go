package postgres

import (
	"context"
	"database/sql"

	"weatherapi/internal/model"
	"weatherapi/internal/repository"
)

// LookupPostgres is a PostgreSQL implementation of repository.LookupRepository.
type LookupPostgres struct {
	db *sql.DB
}

// NewLookupPostgres creates a new LookupPostgres repository.
func NewLookupPostgres(db *sql.DB) *LookupPostgres {
	return &LookupPostgres{db: db}
}

var _ repository.LookupRepository = (*LookupPostgres)(nil)

const lookupColumns = `id, kind, city, upstream_status, duration_ms, archive_key, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanLookup(s scanner) (*model.Lookup, error) {
	var (
		l          model.Lookup
		archiveKey sql.NullString
	)
	if err := s.Scan(
		&l.ID,
		&l.Kind,
		&l.City,
		&l.UpstreamStatus,
		&l.DurationMs,
		&archiveKey,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}
	l.ArchiveKey = archiveKey.String
	return &l, nil
}

// Create inserts a new lookup row and returns the stored record.
func (r *LookupPostgres) Create(ctx context.Context, l *model.Lookup) (*model.Lookup, error) {
	const q = `
		INSERT INTO lookups (` + lookupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + lookupColumns

	archiveKey := sql.NullString{String: l.ArchiveKey, Valid: l.ArchiveKey != ""}
	row := r.db.QueryRowContext(ctx, q,
		l.ID,
		l.Kind,
		l.City,
		l.UpstreamStatus,
		l.DurationMs,
		archiveKey,
		l.CreatedAt,
	)
	return scanLookup(row)
}

// FindByID fetches a single lookup by its ID.
func (r *LookupPostgres) FindByID(ctx context.Context, id string) (*model.Lookup, error) {
	const q = `SELECT ` + lookupColumns + ` FROM lookups WHERE id = $1`
	return scanLookup(r.db.QueryRowContext(ctx, q, id))
}

// List returns lookups using LIMIT/OFFSET pagination and a total count.
func (r *LookupPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Lookup], error) {
	const qCount = `SELECT COUNT(*) FROM lookups`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `SELECT ` + lookupColumns + ` FROM lookups
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Lookup, 0)
	for rows.Next() {
		l, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Lookup]{
		Items: items,
		Total: total,
	}, nil
}
