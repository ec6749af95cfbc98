package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"weatherapi/internal/storage"
)

// MockArchive is a testify mock of storage.Archive.
type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Put(ctx context.Context, key string, r io.Reader, opt storage.PayloadOptions) (storage.PayloadInfo, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PayloadOptions) storage.PayloadInfo); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.Get(0).(storage.PayloadInfo), args.Error(1)
}

func (m *MockArchive) Get(ctx context.Context, key string) (io.ReadCloser, storage.PayloadInfo, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Get(1).(storage.PayloadInfo), args.Error(2)
}

func (m *MockArchive) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockArchive) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
