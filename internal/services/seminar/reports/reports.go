// Package reports builds read-only seminar projections and exports them.
package reports

import (
	"context"
	"fmt"
	"strconv"
	"time"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/services/seminar/storage"
)

const storeTimeout = 5 * time.Second

// Report is a generic rendered table: a title, column headers, string rows,
// and any warnings gathered while building it.
type Report struct {
	Title    string
	Columns  []string
	Rows     [][]string
	Warnings []string
}

// Service builds report projections from seminar storage.
type Service struct {
	store storage.ReportStore
}

// New creates a reports service backed by seminar storage.
func New(store storage.ReportStore) *Service {
	return &Service{store: store}
}

// Schedule builds the session schedule report: every session with its
// assigned students, current submission titles, and evaluators, ordered by
// date then time.
func (s *Service) Schedule(ctx context.Context) (Report, error) {
	if s == nil || s.store == nil {
		return Report{}, platerrors.New(platerrors.CodeStoreUnavailable, "report store is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	rows, err := s.store.ScheduleReport(ctx)
	if err != nil {
		return Report{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "schedule report", err)
	}

	report := Report{
		Title:   "Seminar Schedule",
		Columns: []string{"Session Type", "Date", "Time", "Venue", "Student", "Submission", "Evaluator"},
	}
	for _, row := range rows {
		if row.StudentName != "" && row.SubmissionTitle == "" {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"student %s has no %s submission registered", row.StudentName, row.SessionType,
			))
		}
		report.Rows = append(report.Rows, []string{
			row.SessionType,
			row.Date,
			row.Time,
			row.Venue,
			row.StudentName,
			row.SubmissionTitle,
			row.EvaluatorName,
		})
	}
	return report, nil
}

// FinalEvaluations builds the final evaluation report: every stored rubric
// scoring with student and submission context, highest totals first.
func (s *Service) FinalEvaluations(ctx context.Context) (Report, error) {
	if s == nil || s.store == nil {
		return Report{}, platerrors.New(platerrors.CodeStoreUnavailable, "report store is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	rows, err := s.store.FinalEvaluationReport(ctx)
	if err != nil {
		return Report{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "final evaluation report", err)
	}

	report := Report{
		Title:   "Final Evaluation Results",
		Columns: []string{"Submission", "Student", "Title", "Clarity", "Methodology", "Results", "Presentation", "Total", "Comments"},
	}
	for _, row := range rows {
		report.Rows = append(report.Rows, []string{
			strconv.FormatInt(row.SubmissionID, 10),
			row.StudentName,
			row.SubmissionTitle,
			strconv.Itoa(row.Clarity),
			strconv.Itoa(row.Methodology),
			strconv.Itoa(row.Results),
			strconv.Itoa(row.Presentation),
			strconv.Itoa(row.Total),
			row.Comments,
		})
	}
	if len(report.Rows) == 0 {
		report.Warnings = append(report.Warnings, "no evaluations recorded yet")
	}
	return report, nil
}

// AwardAgenda builds the award ceremony agenda: each stored award resolved
// to its winner, ordered by award type.
func (s *Service) AwardAgenda(ctx context.Context) (Report, error) {
	if s == nil || s.store == nil {
		return Report{}, platerrors.New(platerrors.CodeStoreUnavailable, "report store is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	rows, err := s.store.AwardAgendaReport(ctx)
	if err != nil {
		return Report{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "award agenda report", err)
	}

	report := Report{
		Title:   "Award Ceremony Agenda",
		Columns: []string{"Award", "Student", "Title", "Type", "Score"},
	}
	for _, row := range rows {
		report.Rows = append(report.Rows, []string{
			row.AwardType,
			row.StudentName,
			row.SubmissionTitle,
			row.SubmissionType,
			strconv.FormatFloat(row.Score, 'f', 2, 64),
		})
	}
	if len(report.Rows) == 0 {
		report.Warnings = append(report.Warnings, "no awards computed yet")
	}
	return report, nil
}
