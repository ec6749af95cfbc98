package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherapi/internal/model"
	"weatherapi/internal/repository"
)

var lookupCols = []string{"id", "kind", "city", "upstream_status", "duration_ms", "archive_key", "created_at"}

func TestLookupPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLookupPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("with archive key", func(t *testing.T) {
		l := &model.Lookup{
			ID:             "lookup-1",
			Kind:           "weather",
			City:           "Berlin",
			UpstreamStatus: 200,
			DurationMs:     42,
			ArchiveKey:     "lookups/weather/lookup-1.json",
			CreatedAt:      now,
		}

		mock.ExpectQuery("INSERT INTO lookups").
			WithArgs(l.ID, l.Kind, l.City, l.UpstreamStatus, l.DurationMs,
				sql.NullString{String: l.ArchiveKey, Valid: true}, l.CreatedAt).
			WillReturnRows(sqlmock.NewRows(lookupCols).
				AddRow(l.ID, l.Kind, l.City, l.UpstreamStatus, l.DurationMs, l.ArchiveKey, l.CreatedAt))

		got, err := repo.Create(ctx, l)

		require.NoError(t, err)
		assert.Equal(t, l, got)
	})

	t.Run("without archive key stores NULL", func(t *testing.T) {
		l := &model.Lookup{ID: "lookup-2", Kind: "forecast", City: "", UpstreamStatus: 400, CreatedAt: now}

		mock.ExpectQuery("INSERT INTO lookups").
			WithArgs(l.ID, l.Kind, l.City, l.UpstreamStatus, l.DurationMs, sql.NullString{}, l.CreatedAt).
			WillReturnRows(sqlmock.NewRows(lookupCols).
				AddRow(l.ID, l.Kind, l.City, l.UpstreamStatus, l.DurationMs, nil, l.CreatedAt))

		got, err := repo.Create(ctx, l)

		require.NoError(t, err)
		assert.Empty(t, got.ArchiveKey)
		assert.False(t, got.Archived())
	})

	t.Run("insert error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO lookups").WillReturnError(errors.New("insert failed"))

		got, err := repo.Create(ctx, &model.Lookup{ID: "x", CreatedAt: now})

		assert.EqualError(t, err, "insert failed")
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLookupPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM lookups WHERE id = ?").
			WithArgs("lookup-1").
			WillReturnRows(sqlmock.NewRows(lookupCols).
				AddRow("lookup-1", "weather", "Oslo", 200, 15, "lookups/weather/lookup-1.json", time.Now()))

		l, err := repo.FindByID(ctx, "lookup-1")

		require.NoError(t, err)
		assert.Equal(t, "Oslo", l.City)
		assert.True(t, l.Archived())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM lookups WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		l, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, l)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewLookupPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM lookups").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		mock.ExpectQuery("SELECT (.+) FROM lookups ORDER BY").
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(lookupCols).
				AddRow("b", "forecast", "Rome", 200, 20, nil, time.Now()).
				AddRow("a", "weather", "Rome", 200, 18, nil, time.Now().Add(-time.Minute)))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, "b", res.Items[0].ID)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM lookups").
			WillReturnError(errors.New("count failed"))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 10})

		assert.Error(t, err)
		assert.Nil(t, res)
	})

	t.Run("empty page", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM lookups").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM lookups ORDER BY").
			WithArgs(5, 20).
			WillReturnRows(sqlmock.NewRows(lookupCols))

		res, err := repo.List(ctx, repository.PageQuery{Limit: 5, Offset: 20})

		require.NoError(t, err)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
