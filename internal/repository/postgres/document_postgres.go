package postgres

import (
	"context"
	"database/sql"

	"annotapi/internal/model"
	"annotapi/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, title, content, original_filename, mime_type, size, storage_path, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, title, content, original_filename, mime_type, size, storage_path, uploaded_by, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.OriginalFile.Filename,
		doc.OriginalFile.MimeType,
		doc.OriginalFile.Size,
		doc.StoragePath,
		doc.UploadedBy.ID,
		doc.CreatedAt,
	)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.Title,
		&out.Content,
		&out.OriginalFile.Filename,
		&out.OriginalFile.MimeType,
		&out.OriginalFile.Size,
		&out.StoragePath,
		&out.UploadedBy.ID,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID with the uploader's username
// resolved.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT d.id, d.title, d.content, d.original_filename, d.mime_type, d.size, d.storage_path,
		       u.id, u.username, d.created_at
		FROM documents d
		JOIN users u ON u.id = d.uploaded_by
		WHERE d.id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Title,
		&d.Content,
		&d.OriginalFile.Filename,
		&d.OriginalFile.MimeType,
		&d.OriginalFile.Size,
		&d.StoragePath,
		&d.UploadedBy.ID,
		&d.UploadedBy.Username,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns summaries of all documents, newest first.
func (r *DocumentPostgres) List(ctx context.Context) ([]model.DocumentSummary, error) {
	const q = `
		SELECT d.id, d.title, d.original_filename, d.mime_type, d.size,
		       u.id, u.username, d.created_at
		FROM documents d
		JOIN users u ON u.id = d.uploaded_by
		ORDER BY d.created_at DESC, d.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentSummary, 0)
	for rows.Next() {
		var s model.DocumentSummary
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.OriginalFile.Filename,
			&s.OriginalFile.MimeType,
			&s.OriginalFile.Size,
			&s.UploadedBy.ID,
			&s.UploadedBy.Username,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
