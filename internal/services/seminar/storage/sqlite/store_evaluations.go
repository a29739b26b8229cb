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

// UpsertEvaluation inserts or overwrites the evaluation keyed by
// (evaluator_id, submission_id) as one conditional write.
func (s *Store) UpsertEvaluation(ctx context.Context, evaluation storage.EvaluationRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	evaluatorID := strings.TrimSpace(evaluation.EvaluatorID)
	if evaluatorID == "" {
		return fmt.Errorf("evaluator id is required")
	}
	if evaluation.SubmissionID <= 0 {
		return fmt.Errorf("submission id is required")
	}
	updatedAt := evaluation.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO evaluations (
		   evaluator_id, submission_id, clarity, methodology, results,
		   presentation, total, comments, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (evaluator_id, submission_id) DO UPDATE SET
		   clarity = excluded.clarity,
		   methodology = excluded.methodology,
		   results = excluded.results,
		   presentation = excluded.presentation,
		   total = excluded.total,
		   comments = excluded.comments,
		   updated_at = excluded.updated_at`,
		evaluatorID,
		evaluation.SubmissionID,
		evaluation.Clarity,
		evaluation.Methodology,
		evaluation.Results,
		evaluation.Presentation,
		evaluation.Total,
		evaluation.Comments,
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert evaluation: %w", err)
	}
	return nil
}

// GetEvaluation returns one evaluator's evaluation of one submission.
func (s *Store) GetEvaluation(ctx context.Context, evaluatorID string, submissionID int64) (storage.EvaluationRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.EvaluationRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.EvaluationRecord{}, fmt.Errorf("storage is not configured")
	}
	evaluatorID = strings.TrimSpace(evaluatorID)
	if evaluatorID == "" {
		return storage.EvaluationRecord{}, fmt.Errorf("evaluator id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, evaluator_id, submission_id, clarity, methodology, results,
		        presentation, total, comments, updated_at
		   FROM evaluations
		  WHERE evaluator_id = ? AND submission_id = ?`,
		evaluatorID,
		submissionID,
	)

	var evaluation storage.EvaluationRecord
	var updatedAt int64
	err := row.Scan(
		&evaluation.ID,
		&evaluation.EvaluatorID,
		&evaluation.SubmissionID,
		&evaluation.Clarity,
		&evaluation.Methodology,
		&evaluation.Results,
		&evaluation.Presentation,
		&evaluation.Total,
		&evaluation.Comments,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.EvaluationRecord{}, storage.ErrNotFound
		}
		return storage.EvaluationRecord{}, fmt.Errorf("get evaluation: %w", err)
	}
	evaluation.UpdatedAt = fromMillis(updatedAt)
	return evaluation, nil
}

// AverageTotal returns the mean of evaluation totals for the submission and
// the number of evaluations averaged. storage.ErrNotFound when nobody has
// scored it.
func (s *Store) AverageTotal(ctx context.Context, submissionID int64) (float64, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, 0, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT AVG(total), COUNT(*) FROM evaluations WHERE submission_id = ?`,
		submissionID,
	)
	var average sql.NullFloat64
	var count int
	if err := row.Scan(&average, &count); err != nil {
		return 0, 0, fmt.Errorf("average total: %w", err)
	}
	if !average.Valid || count == 0 {
		return 0, 0, storage.ErrNotFound
	}
	return average.Float64, count, nil
}

const rankedSelect = `
	SELECT sub.id, sub.student_id, u.name, sub.title, sub.type,
	       AVG(ev.total) AS avg_total
	  FROM evaluations ev
	  JOIN submissions sub ON sub.id = ev.submission_id
	  JOIN users u ON u.id = sub.student_id`

// TopRankedByType returns the evaluated submission of the given type with the
// highest average total. Ties break on lowest submission ID.
func (s *Store) TopRankedByType(ctx context.Context, submissionType string) (storage.RankedSubmission, error) {
	if err := ctx.Err(); err != nil {
		return storage.RankedSubmission{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RankedSubmission{}, fmt.Errorf("storage is not configured")
	}
	submissionType = strings.TrimSpace(submissionType)
	if submissionType == "" {
		return storage.RankedSubmission{}, fmt.Errorf("submission type is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		rankedSelect+`
		 WHERE sub.type = ?
		 GROUP BY sub.id
		 ORDER BY avg_total DESC, sub.id ASC
		 LIMIT 1`,
		submissionType,
	)
	return scanRanked(row)
}

// TopRankedOverall ranks across all submission types.
func (s *Store) TopRankedOverall(ctx context.Context) (storage.RankedSubmission, error) {
	if err := ctx.Err(); err != nil {
		return storage.RankedSubmission{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.RankedSubmission{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		rankedSelect+`
		 GROUP BY sub.id
		 ORDER BY avg_total DESC, sub.id ASC
		 LIMIT 1`,
	)
	return scanRanked(row)
}

func scanRanked(row *sql.Row) (storage.RankedSubmission, error) {
	var ranked storage.RankedSubmission
	err := row.Scan(
		&ranked.SubmissionID,
		&ranked.StudentID,
		&ranked.StudentName,
		&ranked.Title,
		&ranked.Type,
		&ranked.AverageTotal,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.RankedSubmission{}, storage.ErrNotFound
		}
		return storage.RankedSubmission{}, fmt.Errorf("scan ranking: %w", err)
	}
	return ranked, nil
}
