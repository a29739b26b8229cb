package domain

import (
	"strings"
	"time"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
)

// SubmissionType describes the presentation track of a submission.
type SubmissionType int

const (
	// SubmissionTypeUnspecified represents an invalid submission type.
	SubmissionTypeUnspecified SubmissionType = iota
	// SubmissionTypeOral indicates an oral presentation.
	SubmissionTypeOral
	// SubmissionTypePoster indicates a poster presentation.
	SubmissionTypePoster
)

// String returns the canonical text stored in the submissions table.
func (t SubmissionType) String() string {
	switch t {
	case SubmissionTypeOral:
		return "Oral"
	case SubmissionTypePoster:
		return "Poster"
	default:
		return ""
	}
}

// ParseSubmissionType maps stored or submitted text to a SubmissionType.
func ParseSubmissionType(value string) SubmissionType {
	switch strings.TrimSpace(value) {
	case "Oral":
		return SubmissionTypeOral
	case "Poster":
		return SubmissionTypePoster
	default:
		return SubmissionTypeUnspecified
	}
}

// Submission is one registered piece of student work. A student may register
// several submissions of the same type; the one with the highest ID is the
// current scoring target for that type.
type Submission struct {
	ID          int64
	StudentID   string
	Title       string
	Abstract    string
	Supervisor  string
	Type        SubmissionType
	ArtifactRef string
	CreatedAt   time.Time
}

// RegisterSubmissionInput describes the fields needed to register work.
type RegisterSubmissionInput struct {
	StudentID   string
	Title       string
	Abstract    string
	Supervisor  string
	Type        SubmissionType
	ArtifactRef string
}

// NormalizeRegisterSubmissionInput trims and validates registration input.
func NormalizeRegisterSubmissionInput(input RegisterSubmissionInput) (RegisterSubmissionInput, error) {
	input.StudentID = strings.TrimSpace(input.StudentID)
	input.Title = strings.TrimSpace(input.Title)
	input.Abstract = strings.TrimSpace(input.Abstract)
	input.Supervisor = strings.TrimSpace(input.Supervisor)
	input.ArtifactRef = strings.TrimSpace(input.ArtifactRef)

	if input.StudentID == "" {
		return RegisterSubmissionInput{}, platerrors.New(platerrors.CodeSubmissionFieldRequired, "student id is required")
	}
	if input.Title == "" {
		return RegisterSubmissionInput{}, platerrors.New(platerrors.CodeSubmissionFieldRequired, "title is required")
	}
	if input.Supervisor == "" {
		return RegisterSubmissionInput{}, platerrors.New(platerrors.CodeSubmissionFieldRequired, "supervisor is required")
	}
	if input.Type == SubmissionTypeUnspecified {
		return RegisterSubmissionInput{}, platerrors.New(platerrors.CodeSubmissionTypeInvalid, "submission type must be Oral or Poster")
	}
	return input, nil
}
