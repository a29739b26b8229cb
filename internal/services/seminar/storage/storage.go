// Package storage defines persistence contracts for seminar state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already
	// exists. The unique index on the natural key is the authoritative
	// guard; callers translate this into their conflict or duplicate error.
	ErrAlreadyExists = errors.New("record already exists")
)

// UserRecord stores one provisioned user.
type UserRecord struct {
	ID        string
	Name      string
	Role      string
	CreatedAt time.Time
}

// SubmissionRecord stores one registered piece of student work.
type SubmissionRecord struct {
	ID          int64
	StudentID   string
	Title       string
	Abstract    string
	Supervisor  string
	Type        string
	ArtifactRef string
	CreatedAt   time.Time
}

// SessionRecord stores one bookable presentation slot.
type SessionRecord struct {
	ID          int64
	Date        string
	Time        string
	Venue       string
	SessionType string
	CreatedAt   time.Time
}

// AssignmentRecord binds one evaluator to one student within one session.
type AssignmentRecord struct {
	ID          int64
	SessionID   int64
	StudentID   string
	EvaluatorID string
	CreatedAt   time.Time
}

// EvaluationRecord stores one evaluator's rubric scoring of one submission.
type EvaluationRecord struct {
	ID           int64
	EvaluatorID  string
	SubmissionID int64
	Clarity      int
	Methodology  int
	Results      int
	Presentation int
	Total        int
	Comments     string
	UpdatedAt    time.Time
}

// AwardRecord stores one award category winner.
type AwardRecord struct {
	AwardType    string
	SubmissionID int64
	Score        float64
}

// RankedSubmission is one row of the average-score ranking.
type RankedSubmission struct {
	SubmissionID int64
	StudentID    string
	StudentName  string
	Title        string
	Type         string
	AverageTotal float64
}

// WorklistEntry is one row of an evaluator's scoring worklist: an assignment
// resolved through the session type to the student's current submission,
// with the evaluator's own total when already scored.
type WorklistEntry struct {
	SessionID       int64
	SubmissionID    int64
	StudentID       string
	StudentName     string
	SubmissionTitle string
	SubmissionType  string
	MyTotal         *int
}

// ScheduleRow is one row of the schedule report projection.
type ScheduleRow struct {
	SessionType     string
	Date            string
	Time            string
	Venue           string
	StudentName     string
	SubmissionTitle string
	EvaluatorName   string
}

// FinalEvaluationRow is one row of the final evaluation report projection.
type FinalEvaluationRow struct {
	SubmissionID    int64
	StudentName     string
	SubmissionTitle string
	Clarity         int
	Methodology     int
	Results         int
	Presentation    int
	Total           int
	Comments        string
}

// AwardAgendaRow is one row of the award agenda report projection.
type AwardAgendaRow struct {
	AwardType       string
	StudentName     string
	SubmissionTitle string
	SubmissionType  string
	Score           float64
}

// UserStore persists provisioned users.
type UserStore interface {
	CreateUser(ctx context.Context, user UserRecord) error
	GetUser(ctx context.Context, userID string) (UserRecord, error)
	ListUsersByRole(ctx context.Context, role string) ([]UserRecord, error)
}

// SubmissionStore persists registered submissions.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, submission SubmissionRecord) (int64, error)
	GetSubmission(ctx context.Context, submissionID int64) (SubmissionRecord, error)
	// CurrentSubmission returns the highest-ID submission of the given type
	// registered by the student.
	CurrentSubmission(ctx context.Context, studentID, submissionType string) (SubmissionRecord, error)
	ListSubmissionsByStudent(ctx context.Context, studentID string) ([]SubmissionRecord, error)
}

// SessionStore persists presentation sessions.
type SessionStore interface {
	// CreateSession inserts one session. The (date, time, venue) unique
	// index rejects the losing writer with ErrAlreadyExists.
	CreateSession(ctx context.Context, session SessionRecord) (int64, error)
	GetSession(ctx context.Context, sessionID int64) (SessionRecord, error)
	ListSessions(ctx context.Context) ([]SessionRecord, error)
}

// AssignmentStore persists evaluator assignments.
type AssignmentStore interface {
	// CreateAssignment inserts one assignment row. The unique index on
	// (session_id, student_id, evaluator_id) rejects retries with
	// ErrAlreadyExists.
	CreateAssignment(ctx context.Context, assignment AssignmentRecord) (int64, error)
	// HasAssignmentForStudent reports whether the evaluator holds any
	// assignment naming the student, in any session.
	HasAssignmentForStudent(ctx context.Context, evaluatorID, studentID string) (bool, error)
	EvaluatorWorklist(ctx context.Context, evaluatorID string) ([]WorklistEntry, error)
}

// EvaluationStore persists rubric evaluations and derived rankings.
type EvaluationStore interface {
	// UpsertEvaluation inserts or overwrites the evaluation keyed by
	// (evaluator_id, submission_id) as one conditional write.
	UpsertEvaluation(ctx context.Context, evaluation EvaluationRecord) error
	GetEvaluation(ctx context.Context, evaluatorID string, submissionID int64) (EvaluationRecord, error)
	// AverageTotal returns the mean of totals across evaluators and the
	// evaluation count; ErrNotFound when the submission has no evaluations.
	AverageTotal(ctx context.Context, submissionID int64) (float64, int, error)
	// TopRankedByType returns the evaluated submission of the given type
	// with the highest average total. Ties break on lowest submission ID.
	TopRankedByType(ctx context.Context, submissionType string) (RankedSubmission, error)
	// TopRankedOverall ranks across all submission types.
	TopRankedOverall(ctx context.Context) (RankedSubmission, error)
}

// AwardStore persists award category winners.
type AwardStore interface {
	// ReplaceAward overwrites the winner for the record's award type as one
	// conditional write, leaving no window without a row.
	ReplaceAward(ctx context.Context, award AwardRecord) error
	ListAwards(ctx context.Context) ([]AwardRecord, error)
}

// ReportStore serves the read-only projections consumed by reporting.
type ReportStore interface {
	ScheduleReport(ctx context.Context) ([]ScheduleRow, error)
	FinalEvaluationReport(ctx context.Context) ([]FinalEvaluationRow, error)
	AwardAgendaReport(ctx context.Context) ([]AwardAgendaRow, error)
}

// Store is the full seminar persistence surface.
type Store interface {
	UserStore
	SubmissionStore
	SessionStore
	AssignmentStore
	EvaluationStore
	AwardStore
	ReportStore
}
