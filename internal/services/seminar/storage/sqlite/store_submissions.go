package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/seminarhub/backend/internal/services/seminar/storage"
)

// CreateSubmission inserts one submission and returns its generated ID.
func (s *Store) CreateSubmission(ctx context.Context, submission storage.SubmissionRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	studentID := strings.TrimSpace(submission.StudentID)
	title := strings.TrimSpace(submission.Title)
	if studentID == "" {
		return 0, fmt.Errorf("student id is required")
	}
	if title == "" {
		return 0, fmt.Errorf("title is required")
	}
	if strings.TrimSpace(submission.Type) == "" {
		return 0, fmt.Errorf("submission type is required")
	}
	createdAt := submission.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO submissions (
		   student_id, title, abstract, supervisor, type, artifact_ref, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		studentID,
		title,
		submission.Abstract,
		submission.Supervisor,
		submission.Type,
		submission.ArtifactRef,
		toMillis(createdAt),
	)
	if err != nil {
		return 0, fmt.Errorf("create submission: %w", err)
	}
	submissionID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create submission id: %w", err)
	}
	return submissionID, nil
}

// GetSubmission returns one submission by ID.
func (s *Store) GetSubmission(ctx context.Context, submissionID int64) (storage.SubmissionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SubmissionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SubmissionRecord{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, student_id, title, abstract, supervisor, type, artifact_ref, created_at
		   FROM submissions
		  WHERE id = ?`,
		submissionID,
	)
	return scanSubmission(row)
}

// CurrentSubmission returns the student's highest-ID submission of the given
// type. Re-registrations supersede earlier rows without deleting them.
func (s *Store) CurrentSubmission(ctx context.Context, studentID, submissionType string) (storage.SubmissionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SubmissionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SubmissionRecord{}, fmt.Errorf("storage is not configured")
	}
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return storage.SubmissionRecord{}, fmt.Errorf("student id is required")
	}
	if strings.TrimSpace(submissionType) == "" {
		return storage.SubmissionRecord{}, fmt.Errorf("submission type is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, student_id, title, abstract, supervisor, type, artifact_ref, created_at
		   FROM submissions
		  WHERE student_id = ? AND type = ?
		  ORDER BY id DESC
		  LIMIT 1`,
		studentID,
		submissionType,
	)
	return scanSubmission(row)
}

// ListSubmissionsByStudent returns every submission by the student, newest
// first.
func (s *Store) ListSubmissionsByStudent(ctx context.Context, studentID string) ([]storage.SubmissionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, fmt.Errorf("student id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, student_id, title, abstract, supervisor, type, artifact_ref, created_at
		   FROM submissions
		  WHERE student_id = ?
		  ORDER BY id DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var submissions []storage.SubmissionRecord
	for rows.Next() {
		var submission storage.SubmissionRecord
		var createdAt int64
		if err := rows.Scan(
			&submission.ID,
			&submission.StudentID,
			&submission.Title,
			&submission.Abstract,
			&submission.Supervisor,
			&submission.Type,
			&submission.ArtifactRef,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("list submissions: %w", err)
		}
		submission.CreatedAt = fromMillis(createdAt)
		submissions = append(submissions, submission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

func scanSubmission(row *sql.Row) (storage.SubmissionRecord, error) {
	var submission storage.SubmissionRecord
	var createdAt int64
	err := row.Scan(
		&submission.ID,
		&submission.StudentID,
		&submission.Title,
		&submission.Abstract,
		&submission.Supervisor,
		&submission.Type,
		&submission.ArtifactRef,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SubmissionRecord{}, storage.ErrNotFound
		}
		return storage.SubmissionRecord{}, fmt.Errorf("scan submission: %w", err)
	}
	submission.CreatedAt = fromMillis(createdAt)
	return submission, nil
}
