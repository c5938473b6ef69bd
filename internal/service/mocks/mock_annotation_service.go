package mocks

import (
	"context"

	"annotapi/internal/model"
	"annotapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAnnotationService struct {
	mock.Mock
}

func (m *MockAnnotationService) Create(ctx context.Context, in service.CreateAnnotationInput) (*model.Annotation, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Annotation), args.Error(1)
}

func (m *MockAnnotationService) ListByDocument(ctx context.Context, documentID string) ([]model.Annotation, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Annotation), args.Error(1)
}

func (m *MockAnnotationService) Delete(ctx context.Context, id, requestingUserID string) error {
	args := m.Called(ctx, id, requestingUserID)
	return args.Error(0)
}
