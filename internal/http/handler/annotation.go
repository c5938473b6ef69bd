package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"annotapi/internal/service"
)

type deleteAnnotationRequest struct {
	UserID string `json:"userId"`
}

// CreateAnnotation handles POST /annotations.
func CreateAnnotation(svc service.AnnotationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateAnnotationInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		a, err := svc.Create(c.UserContext(), in)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAnnotationFieldsRequired):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
			case errors.Is(err, service.ErrInvalidOffsetRange):
				return writeError(c, fiber.StatusBadRequest, "INVALID_RANGE", err.Error())
			case errors.Is(err, service.ErrDuplicateAnnotation):
				return writeError(c, fiber.StatusConflict, "DUPLICATE", "annotation already exists for this range")
			case errors.Is(err, service.ErrUserNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// ListAnnotations handles GET /annotations/:documentId, newest first.
func ListAnnotations(svc service.AnnotationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		documentID := c.Params("documentId")
		if _, err := uuid.Parse(documentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		items, err := svc.ListByDocument(c.UserContext(), documentID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// DeleteAnnotation handles DELETE /annotations/:id. The body carries the
// requesting user's id; only the annotation's creator may delete it.
func DeleteAnnotation(svc service.AnnotationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req deleteAnnotationRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}
		if req.UserID == "" {
			return writeError(c, fiber.StatusBadRequest, "USER_ID_REQUIRED", "userId is required")
		}

		if err := svc.Delete(c.UserContext(), id, req.UserID); err != nil {
			switch {
			case errors.Is(err, service.ErrAnnotationNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "annotation not found")
			case errors.Is(err, service.ErrNotOwner):
				return writeError(c, fiber.StatusForbidden, "FORBIDDEN", "only the annotation's creator may delete it")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(fiber.Map{"message": "annotation deleted"})
	}
}
