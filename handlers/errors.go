// handlers/errors.go
package handlers

import (
	"errors"
	"log"

	"pixel-hunt-system/models"

	"github.com/gofiber/fiber/v2"
)

// respondError maps domain errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrDuplicateBoard):
		status = fiber.StatusConflict
	case errors.Is(err, models.ErrInvalidArgument):
		status = fiber.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, models.ErrInvalidState):
		status = fiber.StatusConflict
	}
	if status == fiber.StatusInternalServerError {
		log.Printf("❌ [HTTP] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
