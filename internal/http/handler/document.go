package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"annotapi/internal/extract"
	"annotapi/internal/service"
)

// UploadDocument handles POST /documents/upload (multipart/form-data with a
// "file" part and a "userId" field).
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		userID := c.FormValue("userId")
		if userID == "" {
			return writeError(c, fiber.StatusBadRequest, "USER_ID_REQUIRED", "userId is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}
		// Reject before the service spools the stream; the service re-checks.
		if !extract.Supported(ct) {
			return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "only text/plain and application/pdf are accepted")
		}

		doc, err := svc.Upload(c.UserContext(), f, fh.Filename, ct, fh.Size, userID)
		if err != nil {
			if errors.Is(err, service.ErrUnsupportedType) {
				return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "only text/plain and application/pdf are accepted")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments handles GET /documents.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// GetDocument handles GET /documents/:id. The full document is returned,
// content included.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrDocumentNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(doc)
	}
}

// DownloadOriginal handles GET /documents/:id/original, streaming the
// archived original upload with its stored filename and content type.
func DownloadOriginal(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rc, info, err := svc.OriginalFile(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrDocumentNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Set(fiber.HeaderContentType, info.MimeType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", info.Filename))
		return c.SendStream(rc, int(info.Size))
	}
}
