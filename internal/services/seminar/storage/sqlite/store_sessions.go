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

// CreateSession inserts one session row. The UNIQUE(date, time, venue) index
// is the authoritative conflict guard: a losing concurrent writer gets
// storage.ErrAlreadyExists instead of a second booking.
func (s *Store) CreateSession(ctx context.Context, session storage.SessionRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	date := strings.TrimSpace(session.Date)
	clock := strings.TrimSpace(session.Time)
	venue := strings.TrimSpace(session.Venue)
	if date == "" || clock == "" || venue == "" {
		return 0, fmt.Errorf("date, time, and venue are required")
	}
	if strings.TrimSpace(session.SessionType) == "" {
		return 0, fmt.Errorf("session type is required")
	}
	createdAt := session.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sessions (date, time, venue, session_type, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		date,
		clock,
		venue,
		session.SessionType,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, storage.ErrAlreadyExists
		}
		return 0, fmt.Errorf("create session: %w", err)
	}
	sessionID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create session id: %w", err)
	}
	return sessionID, nil
}

// GetSession returns one session by ID.
func (s *Store) GetSession(ctx context.Context, sessionID int64) (storage.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.SessionRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.SessionRecord{}, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, date, time, venue, session_type, created_at
		   FROM sessions
		  WHERE id = ?`,
		sessionID,
	)

	var session storage.SessionRecord
	var createdAt int64
	err := row.Scan(&session.ID, &session.Date, &session.Time, &session.Venue, &session.SessionType, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SessionRecord{}, storage.ErrNotFound
		}
		return storage.SessionRecord{}, fmt.Errorf("get session: %w", err)
	}
	session.CreatedAt = fromMillis(createdAt)
	return session, nil
}

// ListSessions returns all sessions ordered by date then time.
func (s *Store) ListSessions(ctx context.Context) ([]storage.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, date, time, venue, session_type, created_at
		   FROM sessions
		  ORDER BY date ASC, time ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []storage.SessionRecord
	for rows.Next() {
		var session storage.SessionRecord
		var createdAt int64
		if err := rows.Scan(&session.ID, &session.Date, &session.Time, &session.Venue, &session.SessionType, &createdAt); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		session.CreatedAt = fromMillis(createdAt)
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
