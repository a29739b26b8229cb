// Package awards aggregates evaluation scores and ranks award winners.
package awards

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
	"github.com/seminarhub/backend/internal/services/seminar/storage"
)

const storeTimeout = 5 * time.Second

// Store is the persistence surface award computation depends on.
type Store interface {
	storage.EvaluationStore
	storage.AwardStore
}

// Service computes average scores and persists award category winners.
type Service struct {
	store Store
}

// New creates an awards service backed by seminar storage.
func New(store Store) *Service {
	return &Service{store: store}
}

// Winner is one computed award category result.
type Winner struct {
	AwardType    domain.AwardType
	SubmissionID int64
	StudentID    string
	StudentName  string
	Title        string
	Score        float64
}

// Award is one persisted award row.
type Award struct {
	AwardType    domain.AwardType
	SubmissionID int64
	Score        float64
}

// AverageScore returns the arithmetic mean of evaluation totals for the
// submission and the number of evaluations averaged. A single evaluation
// yields its exact total.
func (s *Service) AverageScore(ctx context.Context, submissionID int64) (float64, int, error) {
	if s == nil || s.store == nil {
		return 0, 0, platerrors.New(platerrors.CodeStoreUnavailable, "award store is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	average, count, err := s.store.AverageTotal(ctx, submissionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, 0, platerrors.WithMetadata(
				platerrors.CodeNoEvaluations,
				fmt.Sprintf("submission %d has no evaluations yet", submissionID),
				map[string]string{"submission_id": strconv.FormatInt(submissionID, 10)},
			)
		}
		return 0, 0, platerrors.Wrap(platerrors.CodeStoreUnavailable, "average score", err)
	}
	return average, count, nil
}

// ComputeBestByType returns the winner for the submission type: the
// evaluated submission with the highest average total. Ties break on lowest
// submission ID.
func (s *Service) ComputeBestByType(ctx context.Context, submissionType domain.SubmissionType) (Winner, error) {
	if s == nil || s.store == nil {
		return Winner{}, platerrors.New(platerrors.CodeStoreUnavailable, "award store is not configured")
	}
	if submissionType == domain.SubmissionTypeUnspecified {
		return Winner{}, platerrors.New(platerrors.CodeSubmissionTypeInvalid, "submission type must be Oral or Poster")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	ranked, err := s.store.TopRankedByType(ctx, submissionType.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Winner{}, platerrors.WithMetadata(
				platerrors.CodeAwardNoData,
				fmt.Sprintf("no evaluated %s submissions yet", submissionType),
				map[string]string{"type": submissionType.String()},
			)
		}
		return Winner{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "compute best by type", err)
	}

	awardType := domain.AwardTypeBestOral
	if submissionType == domain.SubmissionTypePoster {
		awardType = domain.AwardTypeBestPoster
	}
	return winnerFromRanked(awardType, ranked), nil
}

// ComputePeoplesChoice returns the highest average total across all
// submission types.
func (s *Service) ComputePeoplesChoice(ctx context.Context) (Winner, error) {
	if s == nil || s.store == nil {
		return Winner{}, platerrors.New(platerrors.CodeStoreUnavailable, "award store is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	ranked, err := s.store.TopRankedOverall(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Winner{}, platerrors.New(platerrors.CodeAwardNoData, "no evaluated submissions yet")
		}
		return Winner{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "compute peoples choice", err)
	}
	return winnerFromRanked(domain.AwardTypePeoplesChoice, ranked), nil
}

// PersistAwards recomputes every award category and replaces the stored
// winners. Categories are independent: a category with no evaluated
// submissions is skipped, never an error, and recomputation is idempotent.
func (s *Service) PersistAwards(ctx context.Context) ([]Winner, error) {
	if s == nil || s.store == nil {
		return nil, platerrors.New(platerrors.CodeStoreUnavailable, "award store is not configured")
	}

	var winners []Winner
	for _, awardType := range domain.AwardTypes() {
		winner, err := s.computeCategory(ctx, awardType)
		if err != nil {
			if platerrors.CodeOf(err) == platerrors.CodeAwardNoData {
				continue
			}
			return nil, err
		}

		storeCtx, cancel := context.WithTimeout(ctx, storeTimeout)
		err = s.store.ReplaceAward(storeCtx, storage.AwardRecord{
			AwardType:    winner.AwardType.String(),
			SubmissionID: winner.SubmissionID,
			Score:        winner.Score,
		})
		cancel()
		if err != nil {
			return nil, platerrors.Wrap(platerrors.CodeStoreUnavailable, "persist award", err)
		}
		winners = append(winners, winner)
	}
	return winners, nil
}

// ListAwards returns the stored award winners.
func (s *Service) ListAwards(ctx context.Context) ([]Award, error) {
	if s == nil || s.store == nil {
		return nil, platerrors.New(platerrors.CodeStoreUnavailable, "award store is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	records, err := s.store.ListAwards(ctx)
	if err != nil {
		return nil, platerrors.Wrap(platerrors.CodeStoreUnavailable, "list awards", err)
	}
	awards := make([]Award, 0, len(records))
	for _, record := range records {
		awards = append(awards, Award{
			AwardType:    domain.ParseAwardType(record.AwardType),
			SubmissionID: record.SubmissionID,
			Score:        record.Score,
		})
	}
	return awards, nil
}

func (s *Service) computeCategory(ctx context.Context, awardType domain.AwardType) (Winner, error) {
	switch awardType {
	case domain.AwardTypeBestOral:
		return s.ComputeBestByType(ctx, domain.SubmissionTypeOral)
	case domain.AwardTypeBestPoster:
		return s.ComputeBestByType(ctx, domain.SubmissionTypePoster)
	case domain.AwardTypePeoplesChoice:
		return s.ComputePeoplesChoice(ctx)
	default:
		return Winner{}, platerrors.New(platerrors.CodeAwardNoData, "unknown award category")
	}
}

func winnerFromRanked(awardType domain.AwardType, ranked storage.RankedSubmission) Winner {
	return Winner{
		AwardType:    awardType,
		SubmissionID: ranked.SubmissionID,
		StudentID:    ranked.StudentID,
		StudentName:  ranked.StudentName,
		Title:        ranked.Title,
		Score:        ranked.AverageTotal,
	}
}
