package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"weatherapi/internal/service"
	"weatherapi/internal/storage"
	"weatherapi/internal/upstream"
)

type MockWeatherService struct {
	mock.Mock
}

func (m *MockWeatherService) Current(ctx context.Context, city string) (*upstream.Response, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.Response), args.Error(1)
}

func (m *MockWeatherService) Forecast(ctx context.Context, city string) (*upstream.Response, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*upstream.Response), args.Error(1)
}

func (m *MockWeatherService) ListLookups(ctx context.Context, limit, offset int) (*service.LookupListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LookupListResult), args.Error(1)
}

func (m *MockWeatherService) GetLookup(ctx context.Context, id string) (*service.LookupDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LookupDetail), args.Error(1)
}

func (m *MockWeatherService) OpenPayload(ctx context.Context, id string) (io.ReadCloser, storage.PayloadInfo, error) {
	args := m.Called(ctx, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.PayloadInfo), args.Error(2)
}

func (m *MockWeatherService) JournalEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockWeatherService) ArchiveEnabled() bool {
	return m.Called().Bool(0)
}
