// Package evaluation stores rubric scorings by authorized evaluators.
package evaluation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
	"github.com/seminarhub/backend/internal/services/seminar/storage"
)

const storeTimeout = 5 * time.Second

// Authorizer decides whether an evaluator may score a submission.
type Authorizer interface {
	IsEvaluatorAuthorized(ctx context.Context, evaluatorID string, submissionID int64) (bool, error)
}

// Service validates, authorizes, and persists rubric evaluations.
type Service struct {
	store      storage.EvaluationStore
	authorizer Authorizer
	clock      func() time.Time
}

// New creates an evaluation service. The authorizer gates every write.
func New(store storage.EvaluationStore, authorizer Authorizer) *Service {
	return &Service{
		store:      store,
		authorizer: authorizer,
		clock:      time.Now,
	}
}

// Evaluation is one evaluator's stored scoring of one submission.
type Evaluation struct {
	EvaluatorID  string
	SubmissionID int64
	Rubric       domain.Rubric
	Total        int
	Comments     string
	UpdatedAt    time.Time
}

// SaveOrUpdate stores the evaluator's rubric for the submission, overwriting
// any previous scoring by the same evaluator. Rubric validation and the
// authorization check both complete before anything is written. The total is
// always recomputed server-side from the four criteria.
func (s *Service) SaveOrUpdate(ctx context.Context, evaluatorID string, submissionID int64, rubric domain.Rubric, comments string) (Evaluation, error) {
	if s == nil || s.store == nil {
		return Evaluation{}, platerrors.New(platerrors.CodeStoreUnavailable, "evaluation store is not configured")
	}
	evaluatorID = strings.TrimSpace(evaluatorID)
	if evaluatorID == "" {
		return Evaluation{}, platerrors.New(platerrors.CodeAssignmentFieldRequired, "evaluator id is required")
	}
	if err := rubric.Validate(); err != nil {
		return Evaluation{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.requireAuthorized(ctx, evaluatorID, submissionID); err != nil {
		return Evaluation{}, err
	}

	now := time.Now().UTC()
	if s.clock != nil {
		now = s.clock().UTC()
	}
	total := rubric.Total()
	err := s.store.UpsertEvaluation(ctx, storage.EvaluationRecord{
		EvaluatorID:  evaluatorID,
		SubmissionID: submissionID,
		Clarity:      rubric.Clarity,
		Methodology:  rubric.Methodology,
		Results:      rubric.Results,
		Presentation: rubric.Presentation,
		Total:        total,
		Comments:     strings.TrimSpace(comments),
		UpdatedAt:    now,
	})
	if err != nil {
		return Evaluation{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "save evaluation", err)
	}
	return Evaluation{
		EvaluatorID:  evaluatorID,
		SubmissionID: submissionID,
		Rubric:       rubric,
		Total:        total,
		Comments:     strings.TrimSpace(comments),
		UpdatedAt:    now,
	}, nil
}

// Load returns the evaluator's stored evaluation of the submission, for
// pre-filling a re-opened scoring form.
func (s *Service) Load(ctx context.Context, evaluatorID string, submissionID int64) (Evaluation, error) {
	if s == nil || s.store == nil {
		return Evaluation{}, platerrors.New(platerrors.CodeStoreUnavailable, "evaluation store is not configured")
	}
	evaluatorID = strings.TrimSpace(evaluatorID)
	if evaluatorID == "" {
		return Evaluation{}, platerrors.New(platerrors.CodeAssignmentFieldRequired, "evaluator id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	record, err := s.store.GetEvaluation(ctx, evaluatorID, submissionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Evaluation{}, platerrors.New(platerrors.CodeNotFound, "evaluation not found")
		}
		return Evaluation{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "load evaluation", err)
	}
	return Evaluation{
		EvaluatorID:  record.EvaluatorID,
		SubmissionID: record.SubmissionID,
		Rubric: domain.Rubric{
			Clarity:      record.Clarity,
			Methodology:  record.Methodology,
			Results:      record.Results,
			Presentation: record.Presentation,
		},
		Total:     record.Total,
		Comments:  record.Comments,
		UpdatedAt: record.UpdatedAt,
	}, nil
}

func (s *Service) requireAuthorized(ctx context.Context, evaluatorID string, submissionID int64) error {
	if s.authorizer == nil {
		return platerrors.New(platerrors.CodeStoreUnavailable, "evaluation authorizer is not configured")
	}
	authorized, err := s.authorizer.IsEvaluatorAuthorized(ctx, evaluatorID, submissionID)
	if err != nil {
		return err
	}
	if !authorized {
		return platerrors.WithMetadata(
			platerrors.CodeEvaluationNotAuthorized,
			fmt.Sprintf("evaluator %q is not assigned to the student behind submission %d", evaluatorID, submissionID),
			map[string]string{
				"evaluator_id":  evaluatorID,
				"submission_id": strconv.FormatInt(submissionID, 10),
			},
		)
	}
	return nil
}
