package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"campaignkit-go/pkg/keyword"
	"campaignkit-go/pkg/pipeline"
	"campaignkit-go/pkg/storage"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorHandler maps domain errors onto status codes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, message := statusFor(err)
	resp := ErrorResponse{Error: message, RequestID: requestID(c)}
	if code < fiber.StatusInternalServerError && message != err.Error() {
		resp.Details = err.Error()
	}
	return c.Status(code).JSON(resp)
}

func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, pipeline.ErrInvalidRequest):
		return fiber.StatusBadRequest, "Invalid request"
	case errors.Is(err, keyword.ErrInsufficientInput):
		return fiber.StatusUnprocessableEntity, "Insufficient keyword input"
	case errors.Is(err, storage.ErrNotFound):
		return fiber.StatusNotFound, "Not found"
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "Request timed out"
	}
	return fiber.StatusInternalServerError, "Internal Server Error"
}
