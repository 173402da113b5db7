package server

import (
	"errors"
	"strconv"

	"mingle/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parsePageIndex reads the zero-based "page" query parameter. Absent means
// page zero.
func parsePageIndex(c *fiber.Ctx) (int, error) {
	raw := c.Query("page", "0")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, models.NewValidationError("page must be a non-negative integer")
	}
	return page, nil
}

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("invalid " + name)
	}
	return uint(id), nil
}

// currentUserID returns the authenticated user's ID set by the auth middleware.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// mapServiceError translates an AppError code to an HTTP response.
func mapServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	switch appErr.Code {
	case models.CodeNotFound:
		return models.RespondWithError(c, fiber.StatusNotFound, appErr)
	case models.CodeValidationError, models.CodeInvalidOperation, models.CodeAlreadyRelated:
		return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
	case models.CodeUnauthorized:
		return models.RespondWithError(c, fiber.StatusForbidden, appErr)
	default:
		return models.RespondWithError(c, fiber.StatusInternalServerError, appErr)
	}
}
