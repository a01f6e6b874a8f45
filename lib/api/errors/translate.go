package errors

import (
	"context"
	"errors"

	"github.com/geocontent/backend/lib/exception"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FromError maps a domain error onto its API representation.
func FromError(err error) Error {
	var validation *exception.ValidationError
	var notFound *exception.NotFoundError
	var conflict *exception.ConflictError
	var violation *exception.InvariantViolation

	switch {
	case errors.As(err, &validation):
		return Error{Message: validation.Message, Error: fiber.StatusUnprocessableEntity, Code: validation.Code, Field: validation.Field}
	case errors.As(err, &notFound):
		return Error{Message: notFound.Message, Error: fiber.StatusNotFound, Code: notFound.Code}
	case errors.As(err, &conflict):
		return Error{Message: conflict.Message + ", retry the request", Error: fiber.StatusConflict, Code: conflict.Code}
	case errors.As(err, &violation):
		return Error{Message: InternalServerError.Message, Error: fiber.StatusInternalServerError, Code: violation.Code}
	case errors.Is(err, context.DeadlineExceeded):
		return RequestTimeoutError
	default:
		return InternalServerError
	}
}

// Handle writes err as JSON. Server side failures are logged; client
// errors are not.
func Handle(c *fiber.Ctx, logger *zap.SugaredLogger, err error) error {
	apiError := FromError(err)
	if apiError.Error >= fiber.StatusInternalServerError {
		logger.Errorw("Request failed",
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
	}
	return c.Status(apiError.Error).JSON(apiError)
}
