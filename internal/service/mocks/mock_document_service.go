package mocks

import (
	"context"
	"io"

	"annotapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, originalFilename, mimeType string, size int64, uploadedBy string) (*model.DocumentCreated, error) {
	args := m.Called(ctx, r, originalFilename, mimeType, size, uploadedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentCreated), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context) ([]model.DocumentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentSummary), args.Error(1)
}

func (m *MockDocumentService) OriginalFile(ctx context.Context, id string) (io.ReadCloser, model.FileInfo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Get(1).(model.FileInfo), args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(model.FileInfo), args.Error(2)
}
