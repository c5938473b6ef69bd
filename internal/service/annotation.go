package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"annotapi/internal/model"
	"annotapi/internal/realtime"
	"annotapi/internal/repository"
)

var (
	ErrAnnotationFieldsRequired = errors.New("documentId, userId, selectedText and comment are required")
	ErrInvalidOffsetRange       = errors.New("endOffset must be greater than startOffset and startOffset must not be negative")
	ErrDuplicateAnnotation      = errors.New("annotation already exists for this range")
	ErrAnnotationNotFound       = errors.New("annotation not found")
	ErrNotOwner                 = errors.New("only the annotation's creator may delete it")
)

// Publisher broadcasts an event to every subscriber of a document's room.
// Implementations must not block and must treat an empty room as a no-op.
type Publisher interface {
	Publish(documentID, event string)
}

// CreateAnnotationInput carries the client-measured selection range plus the
// comment. SelectedText is client-asserted: it is stored as sent and never
// cross-checked against the document content.
type CreateAnnotationInput struct {
	DocumentID   string `json:"documentId"`
	UserID       string `json:"userId"`
	StartOffset  int    `json:"startOffset"`
	EndOffset    int    `json:"endOffset"`
	SelectedText string `json:"selectedText"`
	Comment      string `json:"comment"`
}

// AnnotationService defines the annotation use cases: creation with
// duplicate protection, listing, and creator-only deletion. Every mutation
// publishes a refresh event to the document's room.
type AnnotationService interface {
	Create(ctx context.Context, in CreateAnnotationInput) (*model.Annotation, error)
	ListByDocument(ctx context.Context, documentID string) ([]model.Annotation, error)
	Delete(ctx context.Context, id, requestingUserID string) error
}

type annotationService struct {
	repo  repository.AnnotationRepository
	users repository.UserRepository
	hub   Publisher
}

// NewAnnotationService constructs a new AnnotationService.
func NewAnnotationService(repo repository.AnnotationRepository, users repository.UserRepository, hub Publisher) AnnotationService {
	return &annotationService{repo: repo, users: users, hub: hub}
}

func (s *annotationService) Create(ctx context.Context, in CreateAnnotationInput) (*model.Annotation, error) {
	// Field presence only: a whitespace comment passes. Blankness is the
	// client's concern, matching the upstream contract.
	if in.DocumentID == "" || in.UserID == "" || in.SelectedText == "" || in.Comment == "" {
		return nil, ErrAnnotationFieldsRequired
	}
	if in.StartOffset < 0 || in.EndOffset <= in.StartOffset {
		return nil, ErrInvalidOffsetRange
	}

	// Pre-check gives a fast conflict answer, but two identical requests can
	// interleave between this read and the insert. The insert's constraint
	// mapping below is what actually guarantees uniqueness.
	exists, err := s.repo.ExistsRange(ctx, in.DocumentID, in.UserID, in.StartOffset, in.EndOffset)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateAnnotation
	}

	user, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	a := &model.Annotation{
		ID:           uuid.New().String(),
		DocumentID:   in.DocumentID,
		User:         model.UserRef{ID: in.UserID},
		StartOffset:  in.StartOffset,
		EndOffset:    in.EndOffset,
		SelectedText: in.SelectedText,
		Comment:      in.Comment,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, a)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAnnotation
		}
		return nil, err
	}
	stored.User = model.UserRef{ID: user.ID, Username: user.Username}

	// Everyone viewing the document re-fetches, the creator included.
	s.hub.Publish(in.DocumentID, realtime.EventRefreshAnnotations)

	return stored, nil
}

func (s *annotationService) ListByDocument(ctx context.Context, documentID string) ([]model.Annotation, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.ListByDocument(ctx, documentID)
}

func (s *annotationService) Delete(ctx context.Context, id, requestingUserID string) error {
	if id == "" || requestingUserID == "" {
		return ErrIDRequired
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAnnotationNotFound
		}
		return err
	}
	if a.User.ID != requestingUserID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.hub.Publish(a.DocumentID, realtime.EventRefreshAnnotations)
	return nil
}
