package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rpggio/lealogineo/internal/config"
	"github.com/rpggio/lealogineo/internal/domain/roster"
	"github.com/rpggio/lealogineo/internal/tabular"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"config wraps primary key", fmt.Errorf("%w: roster.primary_key: %w", config.ErrInvalidConfig, roster.ErrInvalidPrimaryKey), "INVALID_CONFIG"},
		{"config wraps output format", fmt.Errorf("%w: roster.output_format: %w", config.ErrInvalidConfig, roster.ErrInvalidOutputFormat), "INVALID_CONFIG"},
		{"config wraps delimiter", fmt.Errorf("%w: letters.csv_delimiter: %w", config.ErrInvalidConfig, tabular.ErrUnsupportedFormat), "INVALID_CONFIG"},
		{"primary key", fmt.Errorf("classify: %w", roster.ErrInvalidPrimaryKey), "INVALID_PRIMARY_KEY"},
		{"output format", roster.ErrInvalidOutputFormat, "INVALID_OUTPUT_FORMAT"},
		{"no eligible", roster.ErrNoEligibleRecords, "NO_ELIGIBLE_RECORDS"},
		{"source not found", tabular.ErrSourceNotFound, "SOURCE_NOT_FOUND"},
		{"legacy workbook", tabular.ErrLegacyWorkbook, "UNSUPPORTED_SOURCE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := MapError(tt.err)
			require.NotNil(t, apiErr)
			require.Equal(t, tt.code, apiErr.Code)
			require.NotEmpty(t, apiErr.RecoveryHint)
		})
	}

	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("boom")))
	require.Equal(t, "INTERNAL", toAPIError(errors.New("boom")).Code)
}
