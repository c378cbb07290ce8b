package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/lealogineo/internal/config"
	"github.com/rpggio/lealogineo/internal/domain/letter"
	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/rpggio/lealogineo/internal/tabular"
	"github.com/rpggio/lealogineo/internal/xmltree"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
// Configuration errors take precedence over the domain error they wrap.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, roster.ErrNoEligibleRecords), errors.Is(err, letter.ErrNoEligibleRecords):
		return &APIError{Code: "NO_ELIGIBLE_RECORDS", Message: err.Error(), RecoveryHint: "Check the source file and the primary key setting"}
	case errors.Is(err, config.ErrInvalidConfig):
		return &APIError{Code: "INVALID_CONFIG", Message: err.Error(), RecoveryHint: "Fix the configuration value"}
	case errors.Is(err, roster.ErrInvalidPrimaryKey):
		return &APIError{Code: "INVALID_PRIMARY_KEY", Message: err.Error(), RecoveryHint: "Use LEAID or IdentNr"}
	case errors.Is(err, roster.ErrInvalidOutputFormat):
		return &APIError{Code: "INVALID_OUTPUT_FORMAT", Message: err.Error(), RecoveryHint: "Use xlsx, csv or sqlite"}
	case errors.Is(err, roster.ErrMissingSource), errors.Is(err, letter.ErrMissingSource):
		return &APIError{Code: "MISSING_SOURCE", Message: err.Error(), RecoveryHint: "Pass source_file or set it in the configuration"}
	case errors.Is(err, tabular.ErrSourceNotFound), errors.Is(err, xmltree.ErrSourceNotFound):
		return &APIError{Code: "SOURCE_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the path"}
	case errors.Is(err, tabular.ErrUnsupportedFormat), errors.Is(err, tabular.ErrLegacyWorkbook),
		errors.Is(err, letter.ErrUnsupportedSource), errors.Is(err, xmltree.ErrNotXML):
		return &APIError{Code: "UNSUPPORTED_SOURCE", Message: err.Error(), RecoveryHint: "Save the export as .xlsx or .csv"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

// toAPIError maps err, falling back to an internal error code.
func toAPIError(err error) *APIError {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return &APIError{Code: "INTERNAL", Message: err.Error()}
}
