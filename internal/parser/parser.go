// Package parser converts a free-text Italian sentence describing a recurring
// commitment into a structured Habit. There is no language model behind it:
// an ordered list of keyword/pattern rules runs over the normalized text and
// each rule fills one group of fields.
package parser

import (
	"time"

	"github.com/google/uuid"

	"agendai/internal/dateutil"
	"agendai/internal/models"
)

// ValidationError reports input the parser understood but cannot accept, such
// as an inverted date range. Its message is shown to the user as-is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "abitudine non valida: " + e.Reason
}

// Parse builds a Habit from one natural-language sentence, resolving relative
// dates against the current day.
func Parse(text string) (models.Habit, error) {
	return ParseAt(text, dateutil.Today())
}

// ParseAt is Parse with an explicit reference day for date defaults.
func ParseAt(text string, now time.Time) (models.Habit, error) {
	normalized := Normalize(text)

	startDate, endDate, err := extractDateRange(normalized, now)
	if err != nil {
		return models.Habit{}, err
	}

	startTime, endTime := extractTimeRange(normalized)

	return models.Habit{
		ID:           uuid.New().String(),
		OriginalText: text,
		Active:       true,
		Title:        extractTitle(text, normalized),
		Weekdays:     extractWeekdays(normalized),
		StartTime:    startTime,
		EndTime:      endTime,
		StartDate:    startDate,
		EndDate:      endDate,
		Category:     InferCategory(text),
	}, nil
}
