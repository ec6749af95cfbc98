package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"weatherapi/internal/model"
	"weatherapi/internal/repository"
)

type MockLookupRepository struct {
	mock.Mock
}

func (m *MockLookupRepository) Create(ctx context.Context, l *model.Lookup) (*model.Lookup, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lookup), args.Error(1)
}

func (m *MockLookupRepository) FindByID(ctx context.Context, id string) (*model.Lookup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lookup), args.Error(1)
}

func (m *MockLookupRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Lookup], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Lookup]), args.Error(1)
}
