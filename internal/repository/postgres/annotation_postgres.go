package postgres

import (
	"context"
	"database/sql"

	"annotapi/internal/model"
	"annotapi/internal/repository"
)

// AnnotationPostgres is a PostgreSQL implementation of repository.AnnotationRepository.
type AnnotationPostgres struct {
	db *sql.DB
}

// NewAnnotationPostgres creates a new AnnotationPostgres repository.
func NewAnnotationPostgres(db *sql.DB) *AnnotationPostgres {
	return &AnnotationPostgres{db: db}
}

var _ repository.AnnotationRepository = (*AnnotationPostgres)(nil)

// Create inserts a new annotation row and returns the stored record.
// A violation of the (document_id, user_id, start_offset, end_offset)
// uniqueness constraint is mapped to repository.ErrDuplicate: two identical
// concurrent requests can both pass the service's pre-check, so the insert
// is the authoritative conflict signal.
func (r *AnnotationPostgres) Create(ctx context.Context, a *model.Annotation) (*model.Annotation, error) {
	const q = `
		INSERT INTO annotations (id, document_id, user_id, start_offset, end_offset, selected_text, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, document_id, user_id, start_offset, end_offset, selected_text, comment, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.DocumentID,
		a.User.ID,
		a.StartOffset,
		a.EndOffset,
		a.SelectedText,
		a.Comment,
		a.CreatedAt,
	)
	var out model.Annotation
	if err := row.Scan(
		&out.ID,
		&out.DocumentID,
		&out.User.ID,
		&out.StartOffset,
		&out.EndOffset,
		&out.SelectedText,
		&out.Comment,
		&out.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicate
		}
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single annotation with its author's username resolved.
func (r *AnnotationPostgres) FindByID(ctx context.Context, id string) (*model.Annotation, error) {
	const q = `
		SELECT a.id, a.document_id, u.id, u.username, a.start_offset, a.end_offset, a.selected_text, a.comment, a.created_at
		FROM annotations a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var a model.Annotation
	if err := row.Scan(
		&a.ID,
		&a.DocumentID,
		&a.User.ID,
		&a.User.Username,
		&a.StartOffset,
		&a.EndOffset,
		&a.SelectedText,
		&a.Comment,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByDocument returns all annotations for the document, newest first.
// The id tiebreak keeps the order stable for rows created in the same instant.
func (r *AnnotationPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.Annotation, error) {
	const q = `
		SELECT a.id, a.document_id, u.id, u.username, a.start_offset, a.end_offset, a.selected_text, a.comment, a.created_at
		FROM annotations a
		JOIN users u ON u.id = a.user_id
		WHERE a.document_id = $1
		ORDER BY a.created_at DESC, a.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Annotation, 0)
	for rows.Next() {
		var a model.Annotation
		if err := rows.Scan(
			&a.ID,
			&a.DocumentID,
			&a.User.ID,
			&a.User.Username,
			&a.StartOffset,
			&a.EndOffset,
			&a.SelectedText,
			&a.Comment,
			&a.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ExistsRange reports whether the exact annotation tuple is already present.
func (r *AnnotationPostgres) ExistsRange(ctx context.Context, documentID, userID string, startOffset, endOffset int) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM annotations
			WHERE document_id = $1 AND user_id = $2 AND start_offset = $3 AND end_offset = $4
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, documentID, userID, startOffset, endOffset).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Delete removes an annotation by ID. It does not return an error if the row
// does not exist.
func (r *AnnotationPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM annotations WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
