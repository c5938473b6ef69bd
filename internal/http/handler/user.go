package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"annotapi/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Email string `json:"email"`
}

// RegisterUser handles POST /users/register.
func RegisterUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		u, err := svc.Register(c.UserContext(), req.Username, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrUsernameRequired), errors.Is(err, service.ErrEmailRequired):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
			case errors.Is(err, service.ErrEmailExists):
				return writeError(c, fiber.StatusBadRequest, "EMAIL_EXISTS", "email already exists")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// LoginUser handles POST /users/login. Login is an email lookup; there are
// no credentials.
func LoginUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		}

		u, err := svc.Login(c.UserContext(), req.Email)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmailRequired):
				return writeError(c, fiber.StatusBadRequest, "VALIDATION", err.Error())
			case errors.Is(err, service.ErrUserNotFound):
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "user not found")
			default:
				return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}
		return c.JSON(u)
	}
}
