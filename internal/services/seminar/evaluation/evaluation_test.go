package evaluation

import (
	"context"
	"path/filepath"
	"testing"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
	"github.com/seminarhub/backend/internal/services/seminar/registry"
	"github.com/seminarhub/backend/internal/services/seminar/storage"
	"github.com/seminarhub/backend/internal/services/seminar/storage/sqlite"
)

func TestSaveOrUpdateStoresTotalAsSum(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rubric := domain.Rubric{Clarity: 4, Methodology: 4, Results: 3, Presentation: 3}

	saved, err := env.svc.SaveOrUpdate(context.Background(), "eval-1", env.submissionID, rubric, "solid work")
	if err != nil {
		t.Fatalf("save evaluation: %v", err)
	}
	if saved.Total != 14 {
		t.Fatalf("total = %d, want 14", saved.Total)
	}

	loaded, err := env.svc.Load(context.Background(), "eval-1", env.submissionID)
	if err != nil {
		t.Fatalf("load evaluation: %v", err)
	}
	if loaded.Rubric != rubric || loaded.Total != 14 || loaded.Comments != "solid work" {
		t.Fatalf("loaded = %+v", loaded)
	}
}

func TestSaveOrUpdateOverwritesPriorScores(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	first := domain.Rubric{Clarity: 2, Methodology: 2, Results: 2, Presentation: 2}
	if _, err := env.svc.SaveOrUpdate(context.Background(), "eval-1", env.submissionID, first, ""); err != nil {
		t.Fatalf("save first evaluation: %v", err)
	}

	second := domain.Rubric{Clarity: 5, Methodology: 4, Results: 4, Presentation: 3}
	if _, err := env.svc.SaveOrUpdate(context.Background(), "eval-1", env.submissionID, second, "revised"); err != nil {
		t.Fatalf("save second evaluation: %v", err)
	}

	loaded, err := env.svc.Load(context.Background(), "eval-1", env.submissionID)
	if err != nil {
		t.Fatalf("load evaluation: %v", err)
	}
	if loaded.Rubric != second || loaded.Total != 16 {
		t.Fatalf("loaded = %+v, want overwritten rubric", loaded)
	}
}

func TestSaveOrUpdateRejectsOutOfRangeScores(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rubrics := []domain.Rubric{
		{Clarity: 6, Methodology: 4, Results: 3, Presentation: 3},
		{Clarity: 4, Methodology: -1, Results: 3, Presentation: 3},
	}
	for _, rubric := range rubrics {
		_, err := env.svc.SaveOrUpdate(context.Background(), "eval-1", env.submissionID, rubric, "")
		if platerrors.CodeOf(err) != platerrors.CodeEvaluationScoreOutOfRange {
			t.Fatalf("rubric %+v error = %v, want %v", rubric, err, platerrors.CodeEvaluationScoreOutOfRange)
		}
	}

	// A rejected rubric must leave nothing behind.
	if _, err := env.svc.Load(context.Background(), "eval-1", env.submissionID); platerrors.CodeOf(err) != platerrors.CodeNotFound {
		t.Fatalf("load after rejection error = %v, want %v", err, platerrors.CodeNotFound)
	}
}

func TestSaveOrUpdateRejectsUnassignedEvaluator(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rubric := domain.Rubric{Clarity: 4, Methodology: 4, Results: 3, Presentation: 3}

	_, err := env.svc.SaveOrUpdate(context.Background(), "eval-2", env.submissionID, rubric, "")
	if platerrors.CodeOf(err) != platerrors.CodeEvaluationNotAuthorized {
		t.Fatalf("error = %v, want %v", err, platerrors.CodeEvaluationNotAuthorized)
	}
}

func TestLoadNotFoundBeforeScoring(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := env.svc.Load(context.Background(), "eval-1", env.submissionID)
	if platerrors.CodeOf(err) != platerrors.CodeNotFound {
		t.Fatalf("error = %v, want %v", err, platerrors.CodeNotFound)
	}
}

type testEnv struct {
	svc          *Service
	submissionID int64
}

// newTestEnv provisions a student and two evaluators, books a session,
// assigns eval-1 to the student, and registers one oral submission.
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

	reg := registry.New(store)
	users := []domain.User{
		{ID: "student-1", Name: "Dana Reyes", Role: domain.RoleStudent},
		{ID: "eval-1", Name: "Ravi Chandra", Role: domain.RoleEvaluator},
		{ID: "eval-2", Name: "Noa Lindh", Role: domain.RoleEvaluator},
	}
	for _, user := range users {
		if err := reg.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("seed user %s: %v", user.ID, err)
		}
	}

	sessionID, err := store.CreateSession(context.Background(), storage.SessionRecord{
		Date:        "2026-05-04",
		Time:        "10:00",
		Venue:       "Auditorium A",
		SessionType: "Oral",
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	if _, err := reg.Assign(context.Background(), sessionID, "student-1", "eval-1"); err != nil {
		t.Fatalf("seed assignment: %v", err)
	}

	submission, err := reg.RegisterSubmission(context.Background(), domain.RegisterSubmissionInput{
		StudentID:  "student-1",
		Title:      "Graph Sparsifiers",
		Supervisor: "Prof. Alvarez",
		Type:       domain.SubmissionTypeOral,
	})
	if err != nil {
		t.Fatalf("seed submission: %v", err)
	}

	return testEnv{
		svc:          New(store, reg),
		submissionID: submission.ID,
	}
}
