// Package registry manages users, submissions, and evaluator assignments.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/platform/id"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
	"github.com/seminarhub/backend/internal/services/seminar/storage"
)

const storeTimeout = 5 * time.Second

// Store is the persistence surface the registry depends on.
type Store interface {
	storage.UserStore
	storage.SubmissionStore
	storage.SessionStore
	storage.AssignmentStore
}

// Service provisions users, registers submissions, and binds evaluators to
// students within sessions.
type Service struct {
	store Store
	clock func() time.Time
}

// New creates a registry backed by seminar storage.
func New(store Store) *Service {
	return &Service{
		store: store,
		clock: time.Now,
	}
}

// Assignment binds one evaluator to one student within one session.
type Assignment struct {
	ID          int64
	SessionID   int64
	StudentID   string
	EvaluatorID string
}

// WorklistEntry is one submission awaiting an evaluator's score. MyTotal is
// nil until that evaluator has stored an evaluation.
type WorklistEntry struct {
	SessionID       int64
	SubmissionID    int64
	StudentID       string
	StudentName     string
	SubmissionTitle string
	SubmissionType  domain.SubmissionType
	MyTotal         *int
}

// CreateUser provisions one user into the directory.
func (s *Service) CreateUser(ctx context.Context, user domain.User) error {
	if s == nil || s.store == nil {
		return platerrors.New(platerrors.CodeStoreUnavailable, "seminar store is not configured")
	}
	userID := strings.TrimSpace(user.ID)
	name := strings.TrimSpace(user.Name)
	if userID == "" || name == "" {
		return platerrors.New(platerrors.CodeAssignmentFieldRequired, "user id and name are required")
	}
	if user.Role == domain.RoleUnspecified {
		return platerrors.New(platerrors.CodeAssignmentRoleMismatch, "user role must be Student, Evaluator, or Coordinator")
	}

	now := time.Now().UTC()
	if s.clock != nil {
		now = s.clock().UTC()
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	err := s.store.CreateUser(ctx, storage.UserRecord{
		ID:        userID,
		Name:      name,
		Role:      user.Role.String(),
		CreatedAt: now,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return platerrors.WithMetadata(
				platerrors.CodeAssignmentDuplicate,
				fmt.Sprintf("user %q already exists", userID),
				map[string]string{"user_id": userID},
			)
		}
		return platerrors.Wrap(platerrors.CodeStoreUnavailable, "create user", err)
	}
	return nil
}

// GetUser returns one provisioned user.
func (s *Service) GetUser(ctx context.Context, userID string) (domain.User, error) {
	if s == nil || s.store == nil {
		return domain.User{}, platerrors.New(platerrors.CodeStoreUnavailable, "seminar store is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.User{}, platerrors.New(platerrors.CodeAssignmentFieldRequired, "user id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	record, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, platerrors.New(platerrors.CodeNotFound, "user not found")
		}
		return domain.User{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "get user", err)
	}
	return domain.User{
		ID:   record.ID,
		Name: record.Name,
		Role: domain.ParseRole(record.Role),
	}, nil
}

// ListUsersByRole returns provisioned users holding the given role.
func (s *Service) ListUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	if s == nil || s.store == nil {
		return nil, platerrors.New(platerrors.CodeStoreUnavailable, "seminar store is not configured")
	}
	if role == domain.RoleUnspecified {
		return nil, platerrors.New(platerrors.CodeAssignmentRoleMismatch, "role must be Student, Evaluator, or Coordinator")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	records, err := s.store.ListUsersByRole(ctx, role.String())
	if err != nil {
		return nil, platerrors.Wrap(platerrors.CodeStoreUnavailable, "list users", err)
	}
	users := make([]domain.User, 0, len(records))
	for _, record := range records {
		users = append(users, domain.User{
			ID:   record.ID,
			Name: record.Name,
			Role: domain.ParseRole(record.Role),
		})
	}
	return users, nil
}

// RegisterSubmission registers one piece of student work. Re-registering the
// same type supersedes earlier submissions without deleting them.
func (s *Service) RegisterSubmission(ctx context.Context, input domain.RegisterSubmissionInput) (domain.Submission, error) {
	if s == nil || s.store == nil {
		return domain.Submission{}, platerrors.New(platerrors.CodeStoreUnavailable, "seminar store is not configured")
	}
	input, err := domain.NormalizeRegisterSubmissionInput(input)
	if err != nil {
		return domain.Submission{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := s.requireRole(ctx, input.StudentID, domain.RoleStudent); err != nil {
		return domain.Submission{}, err
	}

	if input.ArtifactRef == "" {
		ref, err := id.NewID()
		if err != nil {
			return domain.Submission{}, platerrors.Wrap(platerrors.CodeUnknown, "generate artifact ref", err)
		}
		input.ArtifactRef = ref
	}

	now := time.Now().UTC()
	if s.clock != nil {
		now = s.clock().UTC()
	}
	submissionID, err := s.store.CreateSubmission(ctx, storage.SubmissionRecord{
		StudentID:   input.StudentID,
		Title:       input.Title,
		Abstract:    input.Abstract,
		Supervisor:  input.Supervisor,
		Type:        input.Type.String(),
		ArtifactRef: input.ArtifactRef,
		CreatedAt:   now,
	})
	if err != nil {
		return domain.Submission{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "register submission", err)
	}
	return domain.Submission{
		ID:          submissionID,
		StudentID:   input.StudentID,
		Title:       input.Title,
		Abstract:    input.Abstract,
		Supervisor:  input.Supervisor,
		Type:        input.Type,
		ArtifactRef: input.ArtifactRef,
		CreatedAt:   now,
	}, nil
}

// ResolveCurrentSubmission returns the student's binding submission for the
// given type: the one with the highest ID.
func (s *Service) ResolveCurrentSubmission(ctx context.Context, studentID string, submissionType domain.SubmissionType) (domain.Submission, error) {
	if s == nil || s.store == nil {
		return domain.Submission{}, platerrors.New(platerrors.CodeStoreUnavailable, "seminar store is not configured")
	}
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return domain.Submission{}, platerrors.New(platerrors.CodeSubmissionFieldRequired, "student id is required")
	}
	if submissionType == domain.SubmissionTypeUnspecified {
		return domain.Submission{}, platerrors.New(platerrors.CodeSubmissionTypeInvalid, "submission type must be Oral or Poster")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	record, err := s.store.CurrentSubmission(ctx, studentID, submissionType.String())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Submission{}, platerrors.WithMetadata(
				platerrors.CodeNotFound,
				fmt.Sprintf("student %q has no %s submission", studentID, submissionType),
				map[string]string{"student_id": studentID, "type": submissionType.String()},
			)
		}
		return domain.Submission{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "resolve current submission", err)
	}
	return submissionFromRecord(record), nil
}

// ListSubmissionsByStudent returns the student's submissions, newest first.
func (s *Service) ListSubmissionsByStudent(ctx context.Context, studentID string) ([]domain.Submission, error) {
	if s == nil || s.store == nil {
		return nil, platerrors.New(platerrors.CodeStoreUnavailable, "seminar store is not configured")
	}
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, platerrors.New(platerrors.CodeSubmissionFieldRequired, "student id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	records, err := s.store.ListSubmissionsByStudent(ctx, studentID)
	if err != nil {
		return nil, platerrors.Wrap(platerrors.CodeStoreUnavailable, "list submissions", err)
	}
	submissions := make([]domain.Submission, 0, len(records))
	for _, record := range records {
		submissions = append(submissions, submissionFromRecord(record))
	}
	return submissions, nil
}

// Assign binds an evaluator to a student within a session. The session must
// exist, the student must hold role Student, and the evaluator must hold
// role Evaluator. Validation completes before the insert; the unique triple
// constraint rejects duplicates authoritatively.
func (s *Service) Assign(ctx context.Context, sessionID int64, studentID, evaluatorID string) (Assignment, error) {
	if s == nil || s.store == nil {
		return Assignment{}, platerrors.New(platerrors.CodeStoreUnavailable, "seminar store is not configured")
	}
	studentID = strings.TrimSpace(studentID)
	evaluatorID = strings.TrimSpace(evaluatorID)
	if sessionID <= 0 || studentID == "" || evaluatorID == "" {
		return Assignment{}, platerrors.New(platerrors.CodeAssignmentFieldRequired, "session id, student id, and evaluator id are required")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if _, err := s.store.GetSession(ctx, sessionID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Assignment{}, platerrors.New(platerrors.CodeNotFound, "session not found")
		}
		return Assignment{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "get session", err)
	}
	if err := s.requireRole(ctx, studentID, domain.RoleStudent); err != nil {
		return Assignment{}, err
	}
	if err := s.requireRole(ctx, evaluatorID, domain.RoleEvaluator); err != nil {
		return Assignment{}, err
	}

	now := time.Now().UTC()
	if s.clock != nil {
		now = s.clock().UTC()
	}
	assignmentID, err := s.store.CreateAssignment(ctx, storage.AssignmentRecord{
		SessionID:   sessionID,
		StudentID:   studentID,
		EvaluatorID: evaluatorID,
		CreatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return Assignment{}, platerrors.WithMetadata(
				platerrors.CodeAssignmentDuplicate,
				fmt.Sprintf("evaluator %q is already assigned to student %q in this session", evaluatorID, studentID),
				map[string]string{"student_id": studentID, "evaluator_id": evaluatorID},
			)
		}
		return Assignment{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "create assignment", err)
	}
	return Assignment{
		ID:          assignmentID,
		SessionID:   sessionID,
		StudentID:   studentID,
		EvaluatorID: evaluatorID,
	}, nil
}

// IsEvaluatorAuthorized reports whether the evaluator may score the
// submission. Authorization is transitive: any assignment naming the
// submission's student suffices, in any session.
func (s *Service) IsEvaluatorAuthorized(ctx context.Context, evaluatorID string, submissionID int64) (bool, error) {
	if s == nil || s.store == nil {
		return false, platerrors.New(platerrors.CodeStoreUnavailable, "seminar store is not configured")
	}
	evaluatorID = strings.TrimSpace(evaluatorID)
	if evaluatorID == "" {
		return false, platerrors.New(platerrors.CodeAssignmentFieldRequired, "evaluator id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	submission, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, platerrors.New(platerrors.CodeNotFound, "submission not found")
		}
		return false, platerrors.Wrap(platerrors.CodeStoreUnavailable, "get submission", err)
	}
	assigned, err := s.store.HasAssignmentForStudent(ctx, evaluatorID, submission.StudentID)
	if err != nil {
		return false, platerrors.Wrap(platerrors.CodeStoreUnavailable, "check assignment", err)
	}
	return assigned, nil
}

// Worklist returns the evaluator's pending and completed scoring targets.
func (s *Service) Worklist(ctx context.Context, evaluatorID string) ([]WorklistEntry, error) {
	if s == nil || s.store == nil {
		return nil, platerrors.New(platerrors.CodeStoreUnavailable, "seminar store is not configured")
	}
	evaluatorID = strings.TrimSpace(evaluatorID)
	if evaluatorID == "" {
		return nil, platerrors.New(platerrors.CodeAssignmentFieldRequired, "evaluator id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	records, err := s.store.EvaluatorWorklist(ctx, evaluatorID)
	if err != nil {
		return nil, platerrors.Wrap(platerrors.CodeStoreUnavailable, "evaluator worklist", err)
	}
	entries := make([]WorklistEntry, 0, len(records))
	for _, record := range records {
		entries = append(entries, WorklistEntry{
			SessionID:       record.SessionID,
			SubmissionID:    record.SubmissionID,
			StudentID:       record.StudentID,
			StudentName:     record.StudentName,
			SubmissionTitle: record.SubmissionTitle,
			SubmissionType:  domain.ParseSubmissionType(record.SubmissionType),
			MyTotal:         record.MyTotal,
		})
	}
	return entries, nil
}

func (s *Service) requireRole(ctx context.Context, userID string, want domain.Role) error {
	record, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return platerrors.WithMetadata(
				platerrors.CodeNotFound,
				fmt.Sprintf("user %q not found", userID),
				map[string]string{"user_id": userID},
			)
		}
		return platerrors.Wrap(platerrors.CodeStoreUnavailable, "get user", err)
	}
	if got := domain.ParseRole(record.Role); got != want {
		return platerrors.WithMetadata(
			platerrors.CodeAssignmentRoleMismatch,
			fmt.Sprintf("user %q holds role %s, want %s", userID, record.Role, want),
			map[string]string{"user_id": userID, "role": record.Role},
		)
	}
	return nil
}

func submissionFromRecord(record storage.SubmissionRecord) domain.Submission {
	return domain.Submission{
		ID:          record.ID,
		StudentID:   record.StudentID,
		Title:       record.Title,
		Abstract:    record.Abstract,
		Supervisor:  record.Supervisor,
		Type:        domain.ParseSubmissionType(record.Type),
		ArtifactRef: record.ArtifactRef,
		CreatedAt:   record.CreatedAt,
	}
}
