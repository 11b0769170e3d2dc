package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/grantmap/internal/repository"
)

var (
	// ErrGranteeNotFound indicates no entry has the requested name.
	ErrGranteeNotFound = errors.New("grantee not found")
	// ErrSearchUnavailable indicates the server runs without a search index.
	ErrSearchUnavailable = errors.New("search index unavailable")
	// ErrJournalUnavailable indicates the server runs without a run journal.
	ErrJournalUnavailable = errors.New("run journal unavailable")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors are returned
// unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrGranteeNotFound):
		return &APIError{Code: "GRANTEE_NOT_FOUND", Message: err.Error(), RecoveryHint: "Use search_grantees or list_grantees to find the exact name"}
	case errors.Is(err, repository.ErrInvalidQuery):
		return &APIError{Code: "INVALID_QUERY", Message: err.Error(), RecoveryHint: "Use plain words"}
	case errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, ErrSearchUnavailable):
		return &APIError{Code: "SEARCH_UNAVAILABLE", Message: err.Error(), RecoveryHint: "Use list_grantees with filters"}
	case errors.Is(err, ErrJournalUnavailable):
		return &APIError{Code: "JOURNAL_UNAVAILABLE", Message: err.Error()}
	default:
		return err
	}
}
