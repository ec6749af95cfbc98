package repository

import (
	"context"

	"weatherapi/internal/model"
)

// LookupRepository defines data access for the lookup journal using SQL queries only.
type LookupRepository interface {
	// Create inserts a new lookup record and returns the stored row.
	Create(ctx context.Context, l *model.Lookup) (*model.Lookup, error)

	// FindByID returns a lookup by its ID. Missing rows surface as sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Lookup, error)

	// List returns a page of lookups, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Lookup], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
