package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestStatusSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		is     func(error) bool
	}{
		{"not found", NewNotFoundError("hackathon not found"), http.StatusNotFound, IsNotFound},
		{"forbidden", NewForbiddenError("access denied"), http.StatusForbidden, IsForbidden},
		{"bad request", NewBadRequestError("bad"), http.StatusBadRequest, IsBadRequest},
		{"missing token", NewMissingTokenError(), http.StatusUnauthorized, IsMissingTokenError},
		{"invalid token", NewInvalidTokenError(), http.StatusUnauthorized, IsInvalidTokenError},
		{"invalid credentials", NewInvalidCredentialsError(), http.StatusUnauthorized, IsInvalidCredentialsError},
		{"inactive account", NewInactiveAccountError(), http.StatusBadRequest, IsInactiveAccountError},
		{"insufficient role", NewInsufficientRoleError("organizer"), http.StatusForbidden, IsInsufficientRoleError},
		{"invalid json", NewInvalidJSONError(errors.New("EOF")), http.StatusBadRequest, IsInvalidJSONError},
		{"already exists", NewAlreadyExists("user"), http.StatusBadRequest, IsBadRequest},
		{"transaction failed", NewTransactionFailedError("delete hackathon", errors.New("boom")), http.StatusInternalServerError, IsTransactionFailedError},
		{"not owner", NewNotOwnerError("update"), http.StatusForbidden, IsForbidden},
		{"invalid field", NewInvalidFieldError("status", "must be one of"), http.StatusBadRequest, IsBadRequest},
		{"expired token", NewExpiredTokenError(), http.StatusUnauthorized, IsExpiredTokenError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusCode(tt.err); got != tt.status {
				t.Errorf("StatusCode = %d, want %d", got, tt.status)
			}
			if !tt.is(tt.err) {
				t.Errorf("sentinel check failed for %v", tt.err)
			}
		})
	}
}

func TestStatusCodeForPlainError(t *testing.T) {
	if got := StatusCode(errors.New("boom")); got != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", got)
	}
}

func TestNewDatabaseError(t *testing.T) {
	notFound := NewDatabaseError("find", "hackathon", fmt.Errorf("query: %w", gorm.ErrRecordNotFound))
	if notFound.StatusCode != http.StatusNotFound || !IsNotFound(notFound) {
		t.Errorf("record not found mapped to %d", notFound.StatusCode)
	}
	if !errors.Is(notFound, gorm.ErrRecordNotFound) {
		t.Error("cause should stay reachable through errors.Is")
	}

	dup := NewDatabaseError("create", "user", errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`))
	if dup.StatusCode != http.StatusBadRequest || !IsUniqueConstraintViolationError(dup) {
		t.Errorf("duplicate key mapped to %d", dup.StatusCode)
	}

	translated := NewDatabaseError("create", "user", gorm.ErrDuplicatedKey)
	if !IsUniqueConstraintViolationError(translated) {
		t.Errorf("gorm.ErrDuplicatedKey mapped to %v", translated)
	}

	fk := NewDatabaseError("delete", "teams", gorm.ErrForeignKeyViolated)
	if !IsForeignKeyConstraintError(fk) || !errors.Is(fk, gorm.ErrForeignKeyViolated) {
		t.Errorf("foreign key violation mapped to %v", fk)
	}
	wrapped := NewTransactionFailedError("delete hackathon", fk)
	if wrapped.StatusCode != http.StatusInternalServerError || !IsForeignKeyConstraintError(wrapped) {
		t.Errorf("wrapped foreign key failure: %d", wrapped.StatusCode)
	}

	generic := NewDatabaseError("list", "hackathons", errors.New("syntax error"))
	if generic.StatusCode != http.StatusInternalServerError || !IsInternal(generic) {
		t.Errorf("generic error mapped to %d", generic.StatusCode)
	}

	passthrough := NewDatabaseError("delete", "hackathon", NewNotOwnerError("delete"))
	if !IsNotOwnerError(passthrough) {
		t.Error("ApiErr causes should pass through unchanged")
	}
}

func TestGetFullError(t *testing.T) {
	err := NewInternalErrorWithCause("create failed", errors.New("disk full"))
	if got, want := err.GetFullError(), "create failed -> disk full"; got != want {
		t.Errorf("GetFullError = %q, want %q", got, want)
	}
}

func TestAlreadyExistsMessage(t *testing.T) {
	err := NewAlreadyExists("User with this email or username")
	if got, want := err.Message(), "User with this email or username already exists"; got != want {
		t.Errorf("Message = %q, want %q", got, want)
	}
}
