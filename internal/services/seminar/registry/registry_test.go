package registry

import (
	"context"
	"path/filepath"
	"testing"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
	"github.com/seminarhub/backend/internal/services/seminar/storage"
	"github.com/seminarhub/backend/internal/services/seminar/storage/sqlite"
)

func TestCreateUserAndGetUser(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	err := svc.CreateUser(context.Background(), domain.User{
		ID:   "student-1",
		Name: "Dana Reyes",
		Role: domain.RoleStudent,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := svc.GetUser(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Name != "Dana Reyes" || got.Role != domain.RoleStudent {
		t.Fatalf("user = %+v", got)
	}
}

func TestCreateUserRejectsUnspecifiedRole(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	err := svc.CreateUser(context.Background(), domain.User{ID: "u-1", Name: "Dana Reyes"})
	if platerrors.CodeOf(err) != platerrors.CodeAssignmentRoleMismatch {
		t.Fatalf("error = %v, want %v", err, platerrors.CodeAssignmentRoleMismatch)
	}
}

func TestRegisterSubmissionRequiresStudentRole(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	seedUser(t, svc, "eval-1", "Ravi Chandra", domain.RoleEvaluator)

	_, err := svc.RegisterSubmission(context.Background(), domain.RegisterSubmissionInput{
		StudentID:  "eval-1",
		Title:      "Graph Sparsifiers",
		Supervisor: "Prof. Alvarez",
		Type:       domain.SubmissionTypeOral,
	})
	if platerrors.CodeOf(err) != platerrors.CodeAssignmentRoleMismatch {
		t.Fatalf("error = %v, want %v", err, platerrors.CodeAssignmentRoleMismatch)
	}
}

func TestRegisterSubmissionRequiresTitleAndSupervisor(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	seedUser(t, svc, "student-1", "Dana Reyes", domain.RoleStudent)

	_, err := svc.RegisterSubmission(context.Background(), domain.RegisterSubmissionInput{
		StudentID: "student-1",
		Title:     "  ",
		Type:      domain.SubmissionTypeOral,
	})
	if platerrors.CodeOf(err) != platerrors.CodeSubmissionFieldRequired {
		t.Fatalf("error = %v, want %v", err, platerrors.CodeSubmissionFieldRequired)
	}
}

func TestResolveCurrentSubmissionUsesLatestOfType(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	seedUser(t, svc, "student-1", "Dana Reyes", domain.RoleStudent)

	seedSubmission(t, svc, "student-1", "Draft", domain.SubmissionTypeOral)
	latest := seedSubmission(t, svc, "student-1", "Final", domain.SubmissionTypeOral)
	seedSubmission(t, svc, "student-1", "Poster Work", domain.SubmissionTypePoster)

	current, err := svc.ResolveCurrentSubmission(context.Background(), "student-1", domain.SubmissionTypeOral)
	if err != nil {
		t.Fatalf("resolve current: %v", err)
	}
	if current.ID != latest.ID || current.Title != "Final" {
		t.Fatalf("current = %+v, want id %d", current, latest.ID)
	}
}

func TestResolveCurrentSubmissionNotFoundWithoutRegistration(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	seedUser(t, svc, "student-1", "Dana Reyes", domain.RoleStudent)

	_, err := svc.ResolveCurrentSubmission(context.Background(), "student-1", domain.SubmissionTypePoster)
	if platerrors.CodeOf(err) != platerrors.CodeNotFound {
		t.Fatalf("error = %v, want %v", err, platerrors.CodeNotFound)
	}
}

func TestAssignChecksRolesAndSession(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(t, svc, "student-1", "Dana Reyes", domain.RoleStudent)
	seedUser(t, svc, "eval-1", "Ravi Chandra", domain.RoleEvaluator)
	sessionID := seedSession(t, store)

	if _, err := svc.Assign(context.Background(), 404, "student-1", "eval-1"); platerrors.CodeOf(err) != platerrors.CodeNotFound {
		t.Fatalf("missing session error = %v, want %v", err, platerrors.CodeNotFound)
	}
	if _, err := svc.Assign(context.Background(), sessionID, "eval-1", "eval-1"); platerrors.CodeOf(err) != platerrors.CodeAssignmentRoleMismatch {
		t.Fatalf("student role error = %v, want %v", err, platerrors.CodeAssignmentRoleMismatch)
	}
	if _, err := svc.Assign(context.Background(), sessionID, "student-1", "student-1"); platerrors.CodeOf(err) != platerrors.CodeAssignmentRoleMismatch {
		t.Fatalf("evaluator role error = %v, want %v", err, platerrors.CodeAssignmentRoleMismatch)
	}

	assignment, err := svc.Assign(context.Background(), sessionID, "student-1", "eval-1")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assignment.ID <= 0 {
		t.Fatalf("assignment id = %d, want positive", assignment.ID)
	}
}

func TestAssignRejectsDuplicate(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(t, svc, "student-1", "Dana Reyes", domain.RoleStudent)
	seedUser(t, svc, "eval-1", "Ravi Chandra", domain.RoleEvaluator)
	sessionID := seedSession(t, store)

	if _, err := svc.Assign(context.Background(), sessionID, "student-1", "eval-1"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	_, err := svc.Assign(context.Background(), sessionID, "student-1", "eval-1")
	if platerrors.CodeOf(err) != platerrors.CodeAssignmentDuplicate {
		t.Fatalf("duplicate error = %v, want %v", err, platerrors.CodeAssignmentDuplicate)
	}
}

func TestIsEvaluatorAuthorizedIsTransitive(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(t, svc, "student-1", "Dana Reyes", domain.RoleStudent)
	seedUser(t, svc, "eval-1", "Ravi Chandra", domain.RoleEvaluator)
	seedUser(t, svc, "eval-2", "Noa Lindh", domain.RoleEvaluator)
	sessionID := seedSession(t, store)
	if _, err := svc.Assign(context.Background(), sessionID, "student-1", "eval-1"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	// Authorization follows the submission's student, not the session the
	// assignment was made in.
	submission := seedSubmission(t, svc, "student-1", "Poster Work", domain.SubmissionTypePoster)

	authorized, err := svc.IsEvaluatorAuthorized(context.Background(), "eval-1", submission.ID)
	if err != nil {
		t.Fatalf("check authorization: %v", err)
	}
	if !authorized {
		t.Fatal("expected eval-1 authorized via student assignment")
	}

	authorized, err = svc.IsEvaluatorAuthorized(context.Background(), "eval-2", submission.ID)
	if err != nil {
		t.Fatalf("check unassigned authorization: %v", err)
	}
	if authorized {
		t.Fatal("expected eval-2 unauthorized")
	}
}

func TestWorklistSkipsUnregisteredStudents(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(t, svc, "student-1", "Dana Reyes", domain.RoleStudent)
	seedUser(t, svc, "student-2", "Kofi Mensah", domain.RoleStudent)
	seedUser(t, svc, "eval-1", "Ravi Chandra", domain.RoleEvaluator)
	sessionID := seedSession(t, store)
	if _, err := svc.Assign(context.Background(), sessionID, "student-1", "eval-1"); err != nil {
		t.Fatalf("assign student-1: %v", err)
	}
	if _, err := svc.Assign(context.Background(), sessionID, "student-2", "eval-1"); err != nil {
		t.Fatalf("assign student-2: %v", err)
	}
	registered := seedSubmission(t, svc, "student-1", "Graph Sparsifiers", domain.SubmissionTypeOral)

	worklist, err := svc.Worklist(context.Background(), "eval-1")
	if err != nil {
		t.Fatalf("worklist: %v", err)
	}
	if len(worklist) != 1 {
		t.Fatalf("worklist len = %d, want 1", len(worklist))
	}
	entry := worklist[0]
	if entry.SubmissionID != registered.ID || entry.MyTotal != nil {
		t.Fatalf("entry = %+v", entry)
	}
}

func newTestService(t *testing.T) (*Service, *sqlite.Store) {
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
	return New(store), store
}

func seedUser(t *testing.T, svc *Service, userID, name string, role domain.Role) {
	t.Helper()

	if err := svc.CreateUser(context.Background(), domain.User{ID: userID, Name: name, Role: role}); err != nil {
		t.Fatalf("seed user %s: %v", userID, err)
	}
}

func seedSubmission(t *testing.T, svc *Service, studentID, title string, submissionType domain.SubmissionType) domain.Submission {
	t.Helper()

	submission, err := svc.RegisterSubmission(context.Background(), domain.RegisterSubmissionInput{
		StudentID:  studentID,
		Title:      title,
		Supervisor: "Prof. Alvarez",
		Type:       submissionType,
	})
	if err != nil {
		t.Fatalf("seed submission %s: %v", title, err)
	}
	return submission
}

func seedSession(t *testing.T, store *sqlite.Store) int64 {
	t.Helper()

	sessionID, err := store.CreateSession(context.Background(), storage.SessionRecord{
		Date:        "2026-05-04",
		Time:        "10:00",
		Venue:       "Auditorium A",
		SessionType: "Oral",
	})
	if err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return sessionID
}
