package utils

import (
	"strings"
	"time"
)

type DateFormat string

// Formats a report date submission is accepted in. Everything normalizes to
// the ISO calendar date before it reaches the store.
const (
	FormatISO8601Date  DateFormat = "2006-01-02"
	FormatSlashDate    DateFormat = "2006/01/02"
	FormatUSDate       DateFormat = "01/02/2006"
	FormatEuropeanDate DateFormat = "02.01.2006"
)

type DateValidator struct {
	supportedFormats []DateFormat
	standardFormat   DateFormat
}

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	StandardFormat string
	OriginalValue  string
}

func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601Date,
			FormatSlashDate,
			FormatUSDate,
			FormatEuropeanDate,
		},
		standardFormat: FormatISO8601Date,
	}
}

// ValidateAndConvert parses input against the supported calendar-date
// formats. The parsed time is truncated to midnight UTC so equality
// comparisons against stored report dates are exact.
func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{
		IsValid:       false,
		OriginalValue: input,
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	for _, format := range dv.supportedFormats {
		parsedTime, err := time.Parse(string(format), input)
		if err != nil {
			continue
		}

		normalized := time.Date(
			parsedTime.Year(), parsedTime.Month(), parsedTime.Day(),
			0, 0, 0, 0, time.UTC,
		)

		result.IsValid = true
		result.DetectedFormat = format
		result.ParsedTime = normalized
		result.StandardFormat = normalized.Format(string(dv.standardFormat))
		return result
	}

	return result
}

func (dv *DateValidator) GetSupportedFormats() []DateFormat {
	return dv.supportedFormats
}

func (dv *DateValidator) AddCustomFormat(format DateFormat) {
	dv.supportedFormats = append(dv.supportedFormats, format)
}
