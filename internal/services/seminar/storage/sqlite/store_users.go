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

// CreateUser inserts one provisioned user.
func (s *Store) CreateUser(ctx context.Context, user storage.UserRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	userID := strings.TrimSpace(user.ID)
	name := strings.TrimSpace(user.Name)
	role := strings.TrimSpace(user.Role)
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	if name == "" {
		return fmt.Errorf("user name is required")
	}
	if role == "" {
		return fmt.Errorf("user role is required")
	}
	createdAt := user.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO users (id, name, role, created_at) VALUES (?, ?, ?, ?)`,
		userID,
		name,
		role,
		toMillis(createdAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser returns one user by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (storage.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.UserRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.UserRecord{}, fmt.Errorf("storage is not configured")
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return storage.UserRecord{}, fmt.Errorf("user id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, role, created_at FROM users WHERE id = ?`,
		userID,
	)

	var user storage.UserRecord
	var createdAt int64
	if err := row.Scan(&user.ID, &user.Name, &user.Role, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.UserRecord{}, storage.ErrNotFound
		}
		return storage.UserRecord{}, fmt.Errorf("get user: %w", err)
	}
	user.CreatedAt = fromMillis(createdAt)
	return user, nil
}

// ListUsersByRole returns all users holding the given role, ordered by ID.
func (s *Store) ListUsersByRole(ctx context.Context, role string) ([]storage.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return nil, fmt.Errorf("role is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, role, created_at FROM users WHERE role = ? ORDER BY id ASC`,
		role,
	)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()

	var users []storage.UserRecord
	for rows.Next() {
		var user storage.UserRecord
		var createdAt int64
		if err := rows.Scan(&user.ID, &user.Name, &user.Role, &createdAt); err != nil {
			return nil, fmt.Errorf("list users by role: %w", err)
		}
		user.CreatedAt = fromMillis(createdAt)
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}
