package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndConvert(t *testing.T) {
	validator := NewDateValidator()

	tests := []struct {
		name           string
		input          string
		valid          bool
		detectedFormat DateFormat
		expected       time.Time
	}{
		{
			name:           "iso date",
			input:          "2024-05-01",
			valid:          true,
			detectedFormat: FormatISO8601Date,
			expected:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "slash date",
			input:          "2024/05/01",
			valid:          true,
			detectedFormat: FormatSlashDate,
			expected:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "us date",
			input:          "05/01/2024",
			valid:          true,
			detectedFormat: FormatUSDate,
			expected:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "european date",
			input:          "01.05.2024",
			valid:          true,
			detectedFormat: FormatEuropeanDate,
			expected:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:           "surrounding whitespace",
			input:          "  2024-05-01  ",
			valid:          true,
			detectedFormat: FormatISO8601Date,
			expected:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
		{name: "garbage", input: "not-a-date"},
		{name: "impossible day", input: "2024-02-30"},
		{name: "month out of range", input: "2024-13-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := validator.ValidateAndConvert(tt.input)

			assert.Equal(t, tt.input, result.OriginalValue)
			if !tt.valid {
				assert.False(t, result.IsValid)
				return
			}

			require.True(t, result.IsValid)
			assert.Equal(t, tt.detectedFormat, result.DetectedFormat)
			assert.Equal(t, tt.expected, result.ParsedTime)
			assert.Equal(t, "2024-05-01", result.StandardFormat)
		})
	}
}

func TestAddCustomFormat(t *testing.T) {
	validator := NewDateValidator()

	result := validator.ValidateAndConvert("20240501")
	assert.False(t, result.IsValid)

	validator.AddCustomFormat("20060102")
	result = validator.ValidateAndConvert("20240501")
	require.True(t, result.IsValid)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), result.ParsedTime)
	assert.Len(t, validator.GetSupportedFormats(), 5)
}
