package repository

import (
	"context"

	"annotapi/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// Documents are insert-only: there is no update or delete, which is what keeps
// stored annotation offsets valid.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller provides ID and CreatedAt; the row is returned as stored.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document with its uploader's username resolved,
	// or sql.ErrNoRows if absent.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns summaries of every document, newest first. No pagination:
	// the full set is always returned.
	List(ctx context.Context) ([]model.DocumentSummary, error)
}
