package mocks

import (
	"context"

	"annotapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAnnotationRepository struct {
	mock.Mock
}

func (m *MockAnnotationRepository) Create(ctx context.Context, a *model.Annotation) (*model.Annotation, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Annotation), args.Error(1)
}

func (m *MockAnnotationRepository) FindByID(ctx context.Context, id string) (*model.Annotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Annotation), args.Error(1)
}

func (m *MockAnnotationRepository) ListByDocument(ctx context.Context, documentID string) ([]model.Annotation, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Annotation), args.Error(1)
}

func (m *MockAnnotationRepository) ExistsRange(ctx context.Context, documentID, userID string, startOffset, endOffset int) (bool, error) {
	args := m.Called(ctx, documentID, userID, startOffset, endOffset)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnnotationRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
