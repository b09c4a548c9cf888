package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/todo_api/internal/apperrors"
	"github.com/SscSPs/todo_api/internal/dto"
	"github.com/SscSPs/todo_api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const internalErrorMessage = "Internal server error"

// statusFor maps a service error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrInvalidToken):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": message}. Anything that is not a known
// client error is logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Request failed", slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: internalErrorMessage})
		return
	}
	c.JSON(status, dto.ErrorResponse{Error: apperrors.Message(err, http.StatusText(status))})
}

// bindJSON binds the request body into obj. An empty body is treated as {} so
// required-field checks still report the endpoint's own message.
func bindJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return binding.Validator.ValidateStruct(obj)
	}
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

// bindError converts a binding failure into a client-facing validation error.
// Failed "required" checks become requiredMsg; other rule failures name the field.
func bindError(err error, requiredMsg string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.New(apperrors.ErrValidation, "Invalid request body")
	}
	for _, fe := range verrs {
		if fe.Tag() != "required" {
			return apperrors.New(apperrors.ErrValidation, "Invalid value for "+fe.Field())
		}
	}
	return apperrors.New(apperrors.ErrValidation, requiredMsg)
}
