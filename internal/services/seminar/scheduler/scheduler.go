// Package scheduler books presentation sessions into unique venue slots.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	platerrors "github.com/seminarhub/backend/internal/platform/errors"
	"github.com/seminarhub/backend/internal/services/seminar/domain"
	"github.com/seminarhub/backend/internal/services/seminar/storage"
)

const storeTimeout = 5 * time.Second

// Service creates and lists presentation sessions.
type Service struct {
	store storage.SessionStore
	clock func() time.Time
}

// New creates a scheduler backed by session storage.
func New(store storage.SessionStore) *Service {
	return &Service{
		store: store,
		clock: time.Now,
	}
}

// CreateSession validates and books one session slot. The (date, time, venue)
// unique constraint is the authoritative guard: when two coordinators race
// for the same slot, the losing insert surfaces as a slot conflict.
func (s *Service) CreateSession(ctx context.Context, input domain.CreateSessionInput) (domain.Session, error) {
	if s == nil || s.store == nil {
		return domain.Session{}, platerrors.New(platerrors.CodeStoreUnavailable, "session store is not configured")
	}
	input, err := domain.NormalizeCreateSessionInput(input)
	if err != nil {
		return domain.Session{}, err
	}

	now := time.Now().UTC()
	if s.clock != nil {
		now = s.clock().UTC()
	}
	record := storage.SessionRecord{
		Date:        input.Date,
		Time:        input.Time,
		Venue:       input.Venue,
		SessionType: input.SessionType.String(),
		CreatedAt:   now,
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	sessionID, err := s.store.CreateSession(ctx, record)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return domain.Session{}, platerrors.WithMetadata(
				platerrors.CodeSessionSlotConflict,
				fmt.Sprintf("venue %q is already booked on %s at %s", input.Venue, input.Date, input.Time),
				map[string]string{"date": input.Date, "time": input.Time, "venue": input.Venue},
			)
		}
		return domain.Session{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "create session", err)
	}

	return domain.Session{
		ID:          sessionID,
		Date:        input.Date,
		Time:        input.Time,
		Venue:       input.Venue,
		SessionType: input.SessionType,
		CreatedAt:   now,
	}, nil
}

// GetSession returns one session by ID.
func (s *Service) GetSession(ctx context.Context, sessionID int64) (domain.Session, error) {
	if s == nil || s.store == nil {
		return domain.Session{}, platerrors.New(platerrors.CodeStoreUnavailable, "session store is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	record, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Session{}, platerrors.New(platerrors.CodeNotFound, "session not found")
		}
		return domain.Session{}, platerrors.Wrap(platerrors.CodeStoreUnavailable, "get session", err)
	}
	return sessionFromRecord(record), nil
}

// ListSessions returns all sessions ordered by date then time.
func (s *Service) ListSessions(ctx context.Context) ([]domain.Session, error) {
	if s == nil || s.store == nil {
		return nil, platerrors.New(platerrors.CodeStoreUnavailable, "session store is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	records, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, platerrors.Wrap(platerrors.CodeStoreUnavailable, "list sessions", err)
	}
	sessions := make([]domain.Session, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, sessionFromRecord(record))
	}
	return sessions, nil
}

func sessionFromRecord(record storage.SessionRecord) domain.Session {
	return domain.Session{
		ID:          record.ID,
		Date:        record.Date,
		Time:        record.Time,
		Venue:       record.Venue,
		SessionType: domain.ParseSubmissionType(record.SessionType),
		CreatedAt:   record.CreatedAt,
	}
}
