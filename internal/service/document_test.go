package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"annotapi/internal/model"
	repoMocks "annotapi/internal/repository/mocks"
	"annotapi/internal/storage"
	storeMocks "annotapi/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// assertNoSpooledFiles fails if the upload temp dir still holds anything:
// spooled uploads are a scoped resource and must not outlive the request.
func assertNoSpooledFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp upload artifacts left behind")
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("plain text happy path", func(t *testing.T) {
		tempDir := t.TempDir()
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tempDir)

		mStore.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".txt")
		}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
			return opt.ContentType == "text/plain" && opt.Metadata["original-filename"] == "notes.txt"
		})).Return(storage.ObjectInfo{Key: "documents/x.txt"}, nil)

		mRepo.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
			return doc.Title == "notes.txt" &&
				doc.Content == "Hello world" &&
				doc.OriginalFile.MimeType == "text/plain" &&
				doc.UploadedBy.ID == "user-1"
		})).Return(&model.Document{ID: "doc-1", Title: "notes.txt"}, nil)

		created, err := svc.Upload(ctx, strings.NewReader("Hello world"), "notes.txt", "text/plain", 11, "user-1")

		assert.NoError(t, err)
		assert.Equal(t, "doc-1", created.ID)
		assert.Equal(t, "notes.txt", created.Title)
		assertNoSpooledFiles(t, tempDir)
		mStore.AssertExpectations(t)
		mRepo.AssertExpectations(t)
	})

	t.Run("nil reader", func(t *testing.T) {
		svc := NewDocumentService(nil, nil, t.TempDir())
		_, err := svc.Upload(ctx, nil, "notes.txt", "text/plain", 0, "user-1")
		assert.ErrorIs(t, err, ErrReaderNil)
	})

	t.Run("missing uploader", func(t *testing.T) {
		tempDir := t.TempDir()
		svc := NewDocumentService(nil, nil, tempDir)
		_, err := svc.Upload(ctx, strings.NewReader("x"), "notes.txt", "text/plain", 1, "")
		assert.ErrorIs(t, err, ErrUploaderRequired)
		assertNoSpooledFiles(t, tempDir)
	})

	t.Run("unsupported media type discards spooled file", func(t *testing.T) {
		tempDir := t.TempDir()
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tempDir)

		_, err := svc.Upload(ctx, strings.NewReader(`{"a":1}`), "data.json", "application/json", 7, "user-1")

		assert.ErrorIs(t, err, ErrUnsupportedType)
		assertNoSpooledFiles(t, tempDir)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("pdf parse failure leaves no document and no temp file", func(t *testing.T) {
		tempDir := t.TempDir()
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tempDir)

		_, err := svc.Upload(ctx, strings.NewReader("definitely not a pdf"), "broken.pdf", "application/pdf", 20, "user-1")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnsupportedType)
		assertNoSpooledFiles(t, tempDir)
		mStore.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("storage error", func(t *testing.T) {
		tempDir := t.TempDir()
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tempDir)

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(storage.ObjectInfo{}, errors.New("storage fail"))

		_, err := svc.Upload(ctx, strings.NewReader("hello"), "notes.txt", "text/plain", 5, "user-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "archive original: storage fail")
		assertNoSpooledFiles(t, tempDir)
		mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository error rolls back archived object", func(t *testing.T) {
		tempDir := t.TempDir()
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, tempDir)

		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return(func(ctx context.Context, key string, r io.Reader, opt storage.PutObjectOptions) storage.ObjectInfo {
				return storage.ObjectInfo{Key: key}
			}, nil)
		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))
		mStore.On("Delete", ctx, mock.Anything).Return(nil)

		_, err := svc.Upload(ctx, strings.NewReader("hello"), "notes.txt", "text/plain", 5, "user-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "db save failed: db fail")
		assertNoSpooledFiles(t, tempDir)
		mStore.AssertExpectations(t)
	})
}

func TestDocumentService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockDocumentRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "doc-1",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "doc-1").
					Return(&model.Document{ID: "doc-1", UploadedBy: model.UserRef{Username: "alice"}}, nil)
			},
		},
		{
			name:       "empty id",
			id:         "",
			setupMocks: func(*repoMocks.MockDocumentRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrDocumentNotFound,
		},
		{
			name: "repository error",
			id:   "doc-1",
			setupMocks: func(mRepo *repoMocks.MockDocumentRepository) {
				mRepo.On("FindByID", ctx, "doc-1").Return(nil, errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockDocumentRepository)
			svc := NewDocumentService(nil, mRepo, "")

			tt.setupMocks(mRepo)

			doc, err := svc.Get(ctx, tt.id)
			if tt.wantErr != nil {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockDocumentRepository)
	svc := NewDocumentService(nil, mRepo, "")

	summaries := []model.DocumentSummary{{ID: "newer"}, {ID: "older"}}
	mRepo.On("List", ctx).Return(summaries, nil)

	got, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, summaries, got)
	mRepo.AssertExpectations(t)
}

func TestDocumentService_OriginalFile(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockStorage)
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(mStore, mRepo, "")

		mRepo.On("FindByID", ctx, "doc-1").Return(&model.Document{
			ID:           "doc-1",
			StoragePath:  "documents/x.txt",
			OriginalFile: model.FileInfo{Filename: "notes.txt", MimeType: "text/plain", Size: 11},
		}, nil)
		mStore.On("Get", ctx, "documents/x.txt").
			Return(io.NopCloser(strings.NewReader("Hello world")), storage.ObjectInfo{}, nil)

		rc, info, err := svc.OriginalFile(ctx, "doc-1")
		assert.NoError(t, err)
		assert.Equal(t, "notes.txt", info.Filename)
		b, _ := io.ReadAll(rc)
		rc.Close()
		assert.Equal(t, "Hello world", string(b))
	})

	t.Run("missing document", func(t *testing.T) {
		mRepo := new(repoMocks.MockDocumentRepository)
		svc := NewDocumentService(nil, mRepo, "")

		mRepo.On("FindByID", ctx, "gone").Return(nil, sql.ErrNoRows)

		_, _, err := svc.OriginalFile(ctx, "gone")
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})
}
