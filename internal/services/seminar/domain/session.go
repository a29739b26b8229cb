package domain

import (
	"fmt"
	"strings"
	"time"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
)

// Session is one bookable presentation slot. No two sessions may share the
// same (date, time, venue).
type Session struct {
	ID          int64
	Date        string // YYYY-MM-DD
	Time        string // 24-hour HH:MM
	Venue       string
	SessionType SubmissionType
	CreatedAt   time.Time
}

// CreateSessionInput describes the fields needed to book a session slot.
type CreateSessionInput struct {
	Date        string
	Time        string
	Venue       string
	SessionType SubmissionType
}

// NormalizeCreateSessionInput trims and validates session booking input.
// Validation happens fully before any write: malformed dates, times, empty
// fields, and unknown session types are all rejected here.
func NormalizeCreateSessionInput(input CreateSessionInput) (CreateSessionInput, error) {
	input.Date = strings.TrimSpace(input.Date)
	input.Time = strings.TrimSpace(input.Time)
	input.Venue = strings.TrimSpace(input.Venue)

	if input.Date == "" || input.Time == "" || input.Venue == "" {
		return CreateSessionInput{}, platerrors.New(platerrors.CodeSessionFieldRequired, "date, time, and venue are required")
	}
	if err := validateSessionDate(input.Date); err != nil {
		return CreateSessionInput{}, err
	}
	if err := validateSessionTime(input.Time); err != nil {
		return CreateSessionInput{}, err
	}
	if input.SessionType == SubmissionTypeUnspecified {
		return CreateSessionInput{}, platerrors.New(platerrors.CodeSessionTypeInvalid, "session type must be Oral or Poster")
	}
	return input, nil
}

func validateSessionDate(value string) error {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil || parsed.Format("2006-01-02") != value {
		return platerrors.WithMetadata(
			platerrors.CodeSessionDateInvalid,
			fmt.Sprintf("date %q must be in YYYY-MM-DD format", value),
			map[string]string{"date": value},
		)
	}
	return nil
}

func validateSessionTime(value string) error {
	parsed, err := time.Parse("15:04", value)
	if err != nil || parsed.Format("15:04") != value {
		return platerrors.WithMetadata(
			platerrors.CodeSessionTimeInvalid,
			fmt.Sprintf("time %q must be in 24-hour HH:MM format", value),
			map[string]string{"time": value},
		)
	}
	return nil
}
