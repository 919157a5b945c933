package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"ngx/coaching/internal/editor"
	"ngx/coaching/internal/export"
	"ngx/coaching/internal/service"
)

var (
	badRequestErrors = []error{
		editor.ErrIndexOutOfRange,
		editor.ErrInvalidPath,
		editor.ErrInvalidNumber,
		editor.ErrUnknownField,
		service.ErrUnknownEditOp,
		service.ErrMissingNode,
		service.ErrNoExportFormats,
		service.ErrMissingCredentials,
		service.ErrInvalidRole,
		service.ErrExerciseNameRequired,
		service.ErrTemplateNameRequired,
		export.ErrUnsupportedFormat,
	}
	notFoundErrors = []error{
		editor.ErrNotFound,
		service.ErrProgramNotFound,
		service.ErrTemplateNotFound,
		service.ErrExerciseNotFound,
		service.ErrExportNotFound,
		service.ErrClientNotFound,
	}
	forbiddenErrors = []error{
		service.ErrProgramAccessDenied,
		service.ErrTemplateAccessDenied,
		service.ErrExerciseAccessDenied,
		service.ErrExportAccessDenied,
		service.ErrProgramNotAssigned,
		service.ErrClientNotManaged,
		service.ErrClientNotRole,
	}
	conflictErrors = []error{
		editor.ErrLastChild,
		service.ErrUserAlreadyExists,
		service.ErrClientAlreadyAssigned,
	}
)

func matchAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor maps a service or editor error to an HTTP status code.
func statusFor(err error) int {
	var verr *editor.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case matchAny(err, conflictErrors):
		return http.StatusConflict
	case matchAny(err, badRequestErrors):
		return http.StatusBadRequest
	case matchAny(err, notFoundErrors):
		return http.StatusNotFound
	case matchAny(err, forbiddenErrors):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAuthenticationFailed), errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// respondError writes err as a JSON error. Internal errors are logged and
// replaced by a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.ErrorContext(c.Request.Context(), "Request failed", slog.String("path", c.FullPath()), slog.Any("error", err))
		abortWithError(c, code, "An unexpected error occurred.")
		return
	}

	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		body := gin.H{"error": verr.Message, "field": verr.Field}
		if verr.Path != nil {
			body["path"] = verr.Path.String()
		}
		c.AbortWithStatusJSON(code, body)
		return
	}
	abortWithError(c, code, err.Error())
}
