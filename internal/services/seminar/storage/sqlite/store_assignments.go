package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/seminarhub/backend/internal/services/seminar/storage"
)

// CreateAssignment inserts one assignment row. The unique index on
// (session_id, student_id, evaluator_id) rejects retries with
// storage.ErrAlreadyExists.
func (s *Store) CreateAssignment(ctx context.Context, assignment storage.AssignmentRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	studentID := strings.TrimSpace(assignment.StudentID)
	evaluatorID := strings.TrimSpace(assignment.EvaluatorID)
	if assignment.SessionID <= 0 {
		return 0, fmt.Errorf("session id is required")
	}
	if studentID == "" {
		return 0, fmt.Errorf("student id is required")
	}
	if evaluatorID == "" {
		return 0, fmt.Errorf("evaluator id is required")
	}
	createdAt := assignment.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO assignments (session_id, student_id, evaluator_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		assignment.SessionID,
		studentID,
		evaluatorID,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrAlreadyExists
		}
		return 0, fmt.Errorf("create assignment: %w", err)
	}
	assignmentID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create assignment id: %w", err)
	}
	return assignmentID, nil
}

// HasAssignmentForStudent reports whether the evaluator holds any assignment
// naming the student, in any session.
func (s *Store) HasAssignmentForStudent(ctx context.Context, evaluatorID, studentID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if s == nil || s.sqlDB == nil {
		return false, fmt.Errorf("storage is not configured")
	}
	evaluatorID = strings.TrimSpace(evaluatorID)
	studentID = strings.TrimSpace(studentID)
	if evaluatorID == "" || studentID == "" {
		return false, fmt.Errorf("evaluator id and student id are required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM assignments WHERE evaluator_id = ? AND student_id = ?
		 )`,
		evaluatorID,
		studentID,
	)
	var assigned bool
	if err := row.Scan(&assigned); err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return assigned, nil
}

// EvaluatorWorklist resolves the evaluator's assignments to scoring rows.
// Each assignment resolves through the session type to the student's current
// submission of that type, skipping students who have not registered one.
// The evaluator's own total rides along when already scored.
func (s *Store) EvaluatorWorklist(ctx context.Context, evaluatorID string) ([]storage.WorklistEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	evaluatorID = strings.TrimSpace(evaluatorID)
	if evaluatorID == "" {
		return nil, fmt.Errorf("evaluator id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT a.session_id, sub.id, u.id, u.name, sub.title, sub.type, ev.total
		   FROM assignments a
		   JOIN sessions ses ON ses.id = a.session_id
		   JOIN users u ON u.id = a.student_id
		   JOIN submissions sub ON sub.id = (
		     SELECT MAX(s2.id) FROM submissions s2
		      WHERE s2.student_id = a.student_id AND s2.type = ses.session_type
		   )
		   LEFT JOIN evaluations ev
		     ON ev.submission_id = sub.id AND ev.evaluator_id = a.evaluator_id
		  WHERE a.evaluator_id = ?
		  ORDER BY ses.date ASC, ses.time ASC, a.id ASC`,
		evaluatorID,
	)
	if err != nil {
		return nil, fmt.Errorf("evaluator worklist: %w", err)
	}
	defer rows.Close()

	var entries []storage.WorklistEntry
	for rows.Next() {
		var entry storage.WorklistEntry
		if err := rows.Scan(
			&entry.SessionID,
			&entry.SubmissionID,
			&entry.StudentID,
			&entry.StudentName,
			&entry.SubmissionTitle,
			&entry.SubmissionType,
			&entry.MyTotal,
		); err != nil {
			return nil, fmt.Errorf("evaluator worklist: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("evaluator worklist: %w", err)
	}
	return entries, nil
}
