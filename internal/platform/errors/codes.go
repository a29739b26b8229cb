// Package errors provides structured error handling for seminar operations.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unclassified error.
	CodeUnknown Code = "UNKNOWN"

	// Session errors
	CodeSessionDateInvalid   Code = "SESSION_DATE_INVALID"
	CodeSessionTimeInvalid   Code = "SESSION_TIME_INVALID"
	CodeSessionFieldRequired Code = "SESSION_FIELD_REQUIRED"
	CodeSessionTypeInvalid   Code = "SESSION_TYPE_INVALID"
	CodeSessionSlotConflict  Code = "SESSION_SLOT_CONFLICT"

	// Submission errors
	CodeSubmissionFieldRequired Code = "SUBMISSION_FIELD_REQUIRED"
	CodeSubmissionTypeInvalid   Code = "SUBMISSION_TYPE_INVALID"

	// Assignment errors
	CodeAssignmentDuplicate     Code = "ASSIGNMENT_DUPLICATE"
	CodeAssignmentRoleMismatch  Code = "ASSIGNMENT_ROLE_MISMATCH"
	CodeAssignmentFieldRequired Code = "ASSIGNMENT_FIELD_REQUIRED"

	// Evaluation errors
	CodeEvaluationScoreOutOfRange Code = "EVALUATION_SCORE_OUT_OF_RANGE"
	CodeEvaluationNotAuthorized   Code = "EVALUATION_NOT_AUTHORIZED"

	// Aggregation and award errors
	CodeNoEvaluations Code = "NO_EVALUATIONS"
	CodeAwardNoData   Code = "AWARD_NO_DATA"

	// Storage errors
	CodeNotFound         Code = "NOT_FOUND"
	CodeStoreUnavailable Code = "STORE_UNAVAILABLE"
)

// HTTPStatus maps domain codes to HTTP response statuses.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, malformed input
	case CodeSessionDateInvalid,
		CodeSessionTimeInvalid,
		CodeSessionFieldRequired,
		CodeSessionTypeInvalid,
		CodeSubmissionFieldRequired,
		CodeSubmissionTypeInvalid,
		CodeAssignmentFieldRequired,
		CodeEvaluationScoreOutOfRange:
		return http.StatusBadRequest

	// Forbidden - evaluator lacks an assignment to the submission's student
	case CodeEvaluationNotAuthorized:
		return http.StatusForbidden

	// Not found - also covers the "nothing to show yet" outcomes
	case CodeNotFound,
		CodeNoEvaluations,
		CodeAwardNoData:
		return http.StatusNotFound

	// Conflict - uniqueness constraint rejected the write
	case CodeSessionSlotConflict,
		CodeAssignmentDuplicate:
		return http.StatusConflict

	// Unprocessable - references resolve but roles disallow the binding
	case CodeAssignmentRoleMismatch:
		return http.StatusUnprocessableEntity

	case CodeStoreUnavailable:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
