package repository

import (
	"context"

	"annotapi/internal/model"
)

// AnnotationRepository defines data access for annotations.
//
// The annotations table carries a uniqueness constraint on
// (document_id, user_id, start_offset, end_offset). Create maps a violation
// of that constraint to ErrDuplicate so the service layer can report a
// conflict without relying on its pre-check read.
type AnnotationRepository interface {
	// Create inserts a new annotation row. Returns ErrDuplicate on a
	// uniqueness-constraint violation.
	Create(ctx context.Context, a *model.Annotation) (*model.Annotation, error)

	// FindByID returns an annotation (with its author's username resolved),
	// or sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id string) (*model.Annotation, error)

	// ListByDocument returns every annotation on the document with usernames
	// resolved, ordered by creation time descending. No pagination.
	ListByDocument(ctx context.Context, documentID string) ([]model.Annotation, error)

	// ExistsRange reports whether the exact annotation tuple already exists.
	// This is the fast-path duplicate pre-check; Create's constraint mapping
	// remains authoritative under races.
	ExistsRange(ctx context.Context, documentID, userID string, startOffset, endOffset int) (bool, error)

	// Delete removes an annotation by ID. Returns nil if the row was deleted
	// or did not exist.
	Delete(ctx context.Context, id string) error
}
