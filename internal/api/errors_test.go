package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ngx/coaching/internal/editor"
	"ngx/coaching/internal/export"
	"ngx/coaching/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&editor.ValidationError{Field: "name", Message: "Program name is required"}, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrapped: %w", editor.ErrLastChild), http.StatusConflict},
		{editor.ErrIndexOutOfRange, http.StatusBadRequest},
		{editor.ErrInvalidNumber, http.StatusBadRequest},
		{export.ErrUnsupportedFormat, http.StatusBadRequest},
		{service.ErrProgramNotFound, http.StatusNotFound},
		{editor.ErrNotFound, http.StatusNotFound},
		{service.ErrTemplateAccessDenied, http.StatusForbidden},
		{service.ErrAuthenticationFailed, http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
