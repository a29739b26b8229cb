package sqlite

import (
	"context"
	"fmt"

	"github.com/seminarhub/backend/internal/services/seminar/storage"
)

// ScheduleReport lists every session with its assignments resolved to
// student, evaluator, and the student's current submission title for the
// session type. Sessions without assignments still appear.
func (s *Store) ScheduleReport(ctx context.Context) ([]storage.ScheduleRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT ses.session_type, ses.date, ses.time, ses.venue,
		        COALESCE(stu.name, ''), COALESCE(sub.title, ''), COALESCE(ev.name, '')
		   FROM sessions ses
		   LEFT JOIN assignments a ON a.session_id = ses.id
		   LEFT JOIN users stu ON stu.id = a.student_id
		   LEFT JOIN users ev ON ev.id = a.evaluator_id
		   LEFT JOIN submissions sub ON sub.id = (
		     SELECT MAX(s2.id) FROM submissions s2
		      WHERE s2.student_id = a.student_id AND s2.type = ses.session_type
		   )
		  ORDER BY ses.date ASC, ses.time ASC, stu.name ASC, ev.name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("schedule report: %w", err)
	}
	defer rows.Close()

	var report []storage.ScheduleRow
	for rows.Next() {
		var row storage.ScheduleRow
		if err := rows.Scan(
			&row.SessionType,
			&row.Date,
			&row.Time,
			&row.Venue,
			&row.StudentName,
			&row.SubmissionTitle,
			&row.EvaluatorName,
		); err != nil {
			return nil, fmt.Errorf("schedule report: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("schedule report: %w", err)
	}
	return report, nil
}

// FinalEvaluationReport lists every stored evaluation with student and
// submission context.
func (s *Store) FinalEvaluationReport(ctx context.Context) ([]storage.FinalEvaluationRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT sub.id, stu.name, sub.title, e.clarity, e.methodology,
		        e.results, e.presentation, e.total, e.comments
		   FROM evaluations e
		   JOIN submissions sub ON sub.id = e.submission_id
		   JOIN users stu ON stu.id = sub.student_id
		  ORDER BY e.total DESC, sub.id ASC, e.evaluator_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("final evaluation report: %w", err)
	}
	defer rows.Close()

	var report []storage.FinalEvaluationRow
	for rows.Next() {
		var row storage.FinalEvaluationRow
		if err := rows.Scan(
			&row.SubmissionID,
			&row.StudentName,
			&row.SubmissionTitle,
			&row.Clarity,
			&row.Methodology,
			&row.Results,
			&row.Presentation,
			&row.Total,
			&row.Comments,
		); err != nil {
			return nil, fmt.Errorf("final evaluation report: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("final evaluation report: %w", err)
	}
	return report, nil
}

// AwardAgendaReport lists stored awards resolved to winner names and titles.
func (s *Store) AwardAgendaReport(ctx context.Context) ([]storage.AwardAgendaRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT a.award_type, stu.name, sub.title, sub.type, a.score
		   FROM awards a
		   JOIN submissions sub ON sub.id = a.submission_id
		   JOIN users stu ON stu.id = sub.student_id
		  ORDER BY a.award_type ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("award agenda report: %w", err)
	}
	defer rows.Close()

	var report []storage.AwardAgendaRow
	for rows.Next() {
		var row storage.AwardAgendaRow
		if err := rows.Scan(
			&row.AwardType,
			&row.StudentName,
			&row.SubmissionTitle,
			&row.SubmissionType,
			&row.Score,
		); err != nil {
			return nil, fmt.Errorf("award agenda report: %w", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("award agenda report: %w", err)
	}
	return report, nil
}
