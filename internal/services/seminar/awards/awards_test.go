package awards

import (
	"context"
	"path/filepath"
	"testing"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
	"github.com/seminarhub/backend/internal/services/seminar/storage"
	"github.com/seminarhub/backend/internal/services/seminar/storage/sqlite"
)

func TestAverageScoreIsExactMean(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	oral := env.seedSubmission(t, "student-1", "Graph Sparsifiers", "Oral")
	env.seedEvaluation(t, "eval-1", oral, 14)
	env.seedEvaluation(t, "eval-2", oral, 15)

	average, count, err := env.svc.AverageScore(context.Background(), oral)
	if err != nil {
		t.Fatalf("average score: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if average != 14.5 {
		t.Fatalf("average = %v, want 14.5", average)
	}
}

func TestAverageScoreSingleEvaluatorIsExact(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	oral := env.seedSubmission(t, "student-1", "Graph Sparsifiers", "Oral")
	env.seedEvaluation(t, "eval-1", oral, 17)

	average, count, err := env.svc.AverageScore(context.Background(), oral)
	if err != nil {
		t.Fatalf("average score: %v", err)
	}
	if count != 1 || average != 17 {
		t.Fatalf("average = %v count = %d, want 17 and 1", average, count)
	}
}

func TestAverageScoreNoEvaluations(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	oral := env.seedSubmission(t, "student-1", "Graph Sparsifiers", "Oral")

	_, _, err := env.svc.AverageScore(context.Background(), oral)
	if platerrors.CodeOf(err) != platerrors.CodeNoEvaluations {
		t.Fatalf("error = %v, want %v", err, platerrors.CodeNoEvaluations)
	}
}

func TestComputeBestByTypeTieBreaksOnLowestID(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	first := env.seedSubmission(t, "student-1", "Graph Sparsifiers", "Oral")
	second := env.seedSubmission(t, "student-2", "Sensor Fusion", "Oral")
	env.seedEvaluation(t, "eval-1", first, 14)
	env.seedEvaluation(t, "eval-1", second, 14)

	winner, err := env.svc.ComputeBestByType(context.Background(), domain.SubmissionTypeOral)
	if err != nil {
		t.Fatalf("compute best oral: %v", err)
	}
	if winner.SubmissionID != first {
		t.Fatalf("winner = %d, want %d on tie", winner.SubmissionID, first)
	}
	if winner.AwardType != domain.AwardTypeBestOral {
		t.Fatalf("award type = %v", winner.AwardType)
	}
}

func TestComputePeoplesChoiceSpansTypes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	oral := env.seedSubmission(t, "student-1", "Graph Sparsifiers", "Oral")
	poster := env.seedSubmission(t, "student-2", "Sensor Fusion", "Poster")
	env.seedEvaluation(t, "eval-1", oral, 12)
	env.seedEvaluation(t, "eval-1", poster, 19)

	winner, err := env.svc.ComputePeoplesChoice(context.Background())
	if err != nil {
		t.Fatalf("compute peoples choice: %v", err)
	}
	if winner.SubmissionID != poster || winner.Score != 19 {
		t.Fatalf("winner = %+v, want poster with 19", winner)
	}
}

func TestPersistAwardsSkipsEmptyCategories(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	oral := env.seedSubmission(t, "student-1", "Graph Sparsifiers", "Oral")
	env.seedEvaluation(t, "eval-1", oral, 14)
	// No poster submissions exist, so BEST_POSTER must be skipped.

	winners, err := env.svc.PersistAwards(context.Background())
	if err != nil {
		t.Fatalf("persist awards: %v", err)
	}
	if len(winners) != 2 {
		t.Fatalf("winners len = %d, want BEST_ORAL and PEOPLES_CHOICE", len(winners))
	}
	if winners[0].AwardType != domain.AwardTypeBestOral || winners[1].AwardType != domain.AwardTypePeoplesChoice {
		t.Fatalf("winners = %+v", winners)
	}
}

func TestPersistAwardsIsIdempotentAndTracksNewScores(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	oral := env.seedSubmission(t, "student-1", "Graph Sparsifiers", "Oral")
	env.seedEvaluation(t, "eval-1", oral, 14)

	if _, err := env.svc.PersistAwards(context.Background()); err != nil {
		t.Fatalf("persist awards: %v", err)
	}
	if _, err := env.svc.PersistAwards(context.Background()); err != nil {
		t.Fatalf("recompute unchanged: %v", err)
	}

	awards, err := env.svc.ListAwards(context.Background())
	if err != nil {
		t.Fatalf("list awards: %v", err)
	}
	if len(awards) != 2 {
		t.Fatalf("awards len = %d, want 2 after recompute", len(awards))
	}

	// A stronger oral submission arrives; recompute must replace the winner.
	better := env.seedSubmission(t, "student-2", "Sensor Fusion", "Oral")
	env.seedEvaluation(t, "eval-1", better, 19)
	if _, err := env.svc.PersistAwards(context.Background()); err != nil {
		t.Fatalf("recompute with new leader: %v", err)
	}

	awards, err = env.svc.ListAwards(context.Background())
	if err != nil {
		t.Fatalf("list awards after recompute: %v", err)
	}
	for _, award := range awards {
		if award.AwardType == domain.AwardTypeBestOral && award.SubmissionID != better {
			t.Fatalf("best oral = %+v, want submission %d", award, better)
		}
	}
}

type testEnv struct {
	svc   *Service
	store *sqlite.Store
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "seminar.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})

	users := []storage.UserRecord{
		{ID: "student-1", Name: "Dana Reyes", Role: "Student"},
		{ID: "student-2", Name: "Kofi Mensah", Role: "Student"},
		{ID: "eval-1", Name: "Ravi Chandra", Role: "Evaluator"},
		{ID: "eval-2", Name: "Noa Lindh", Role: "Evaluator"},
	}
	for _, user := range users {
		if err := store.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("seed user %s: %v", user.ID, err)
		}
	}
	return testEnv{svc: New(store), store: store}
}

func (e testEnv) seedSubmission(t *testing.T, studentID, title, submissionType string) int64 {
	t.Helper()

	submissionID, err := e.store.CreateSubmission(context.Background(), storage.SubmissionRecord{
		StudentID:  studentID,
		Title:      title,
		Supervisor: "Prof. Alvarez",
		Type:       submissionType,
	})
	if err != nil {
		t.Fatalf("seed submission %s: %v", title, err)
	}
	return submissionID
}

func (e testEnv) seedEvaluation(t *testing.T, evaluatorID string, submissionID int64, total int) {
	t.Helper()

	err := e.store.UpsertEvaluation(context.Background(), storage.EvaluationRecord{
		EvaluatorID:  evaluatorID,
		SubmissionID: submissionID,
		Clarity:      total / 4,
		Methodology:  total / 4,
		Results:      total / 4,
		Presentation: total - 3*(total/4),
		Total:        total,
	})
	if err != nil {
		t.Fatalf("seed evaluation %s/%d: %v", evaluatorID, submissionID, err)
	}
}
