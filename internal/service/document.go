package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"annotapi/internal/extract"
	"annotapi/internal/model"
	"annotapi/internal/repository"
	"annotapi/internal/storage"
)

var (
	ErrIDRequired       = errors.New("id is required")
	ErrReaderNil        = errors.New("reader is nil")
	ErrUploaderRequired = errors.New("uploader identity is required")
	ErrUnsupportedType  = errors.New("unsupported media type")
	ErrDocumentNotFound = errors.New("document not found")
)

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload spools the incoming file, extracts its plain-text content,
	// archives the original bytes to object storage, and persists the
	// document. Only text/plain and application/pdf are accepted. The spooled
	// temp file is removed on every exit path, and an extraction or archive
	// failure leaves no partial document record.
	Upload(ctx context.Context, r io.Reader, originalFilename, mimeType string, size int64, uploadedBy string) (*model.DocumentCreated, error)

	// Get returns the full document, content included, with the uploader's
	// username resolved.
	Get(ctx context.Context, id string) (*model.Document, error)

	// List returns summaries of all documents, newest first.
	List(ctx context.Context) ([]model.DocumentSummary, error)

	// OriginalFile streams the archived original upload for a document.
	OriginalFile(ctx context.Context, id string) (io.ReadCloser, model.FileInfo, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   storage.Storage
	repo    repository.DocumentRepository
	tempDir string
}

// NewDocumentService constructs a new DocumentService. tempDir is where
// uploads are spooled before extraction; empty means the OS default.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, tempDir string) DocumentService {
	return &documentService{store: store, repo: repo, tempDir: tempDir}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename, mimeType string, size int64, uploadedBy string) (*model.DocumentCreated, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if uploadedBy == "" {
		return nil, ErrUploaderRequired
	}

	// Spool the stream to a temp file; extraction needs a seekable file.
	tmpPath, err := s.spool(r)
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	// The temp artifact must not survive this request, whatever happens.
	defer os.Remove(tmpPath)

	var content string
	switch mimeType {
	case extract.MimeText:
		content, err = extract.Text(tmpPath)
	case extract.MimePDF:
		content, err = extract.PDF(tmpPath)
	default:
		return nil, ErrUnsupportedType
	}
	if err != nil {
		return nil, fmt.Errorf("extract content: %w", err)
	}

	// Archive the original bytes before touching the database.
	ext := filepath.Ext(originalFilename)
	key := filepath.ToSlash(filepath.Join("documents", uuid.New().String()+ext))

	f, err := os.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("reopen spooled upload: %w", err)
	}
	defer f.Close()

	_, err = s.store.Put(ctx, key, f, storage.PutObjectOptions{
		Size:        size,
		ContentType: mimeType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("archive original: %w", err)
	}

	doc := &model.Document{
		ID:      uuid.New().String(),
		Title:   originalFilename,
		Content: content,
		OriginalFile: model.FileInfo{
			Filename: originalFilename,
			MimeType: mimeType,
			Size:     size,
		},
		UploadedBy:  model.UserRef{ID: uploadedBy},
		StoragePath: key,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Rollback: remove the archived object so storage and DB stay in step.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	return &model.DocumentCreated{
		ID:        stored.ID,
		Title:     stored.Title,
		CreatedAt: stored.CreatedAt,
	}, nil
}

// spool copies the upload stream to a temp file and returns its path.
func (s *documentService) spool(r io.Reader) (string, error) {
	tmp, err := os.CreateTemp(s.tempDir, "upload-*")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// List returns summaries of every document. No pagination: the viewer lists
// the full corpus.
func (s *documentService) List(ctx context.Context) ([]model.DocumentSummary, error) {
	return s.repo.List(ctx)
}

// OriginalFile streams the archived original upload.
func (s *documentService) OriginalFile(ctx context.Context, id string) (io.ReadCloser, model.FileInfo, error) {
	if id == "" {
		return nil, model.FileInfo{}, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.FileInfo{}, ErrDocumentNotFound
		}
		return nil, model.FileInfo{}, err
	}
	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, model.FileInfo{}, fmt.Errorf("fetch original: %w", err)
	}
	return rc, doc.OriginalFile, nil
}
