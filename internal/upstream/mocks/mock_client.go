package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"weatherapi/internal/upstream"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) FetchCurrent(ctx context.Context, city string) (*upstream.Response, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.Response), args.Error(1)
}

func (m *MockClient) FetchForecast(ctx context.Context, city string) (*upstream.Response, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.Response), args.Error(1)
}
