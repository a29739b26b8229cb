package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/seminarhub/backend/internal/services/seminar/storage"
)

// ReplaceAward overwrites the winner for the record's award type as one
// conditional write. Recomputation never leaves a window without a row.
func (s *Store) ReplaceAward(ctx context.Context, award storage.AwardRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	awardType := strings.TrimSpace(award.AwardType)
	if awardType == "" {
		return fmt.Errorf("award type is required")
	}
	if award.SubmissionID <= 0 {
		return fmt.Errorf("submission id is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO awards (award_type, submission_id, score)
		 VALUES (?, ?, ?)
		 ON CONFLICT (award_type) DO UPDATE SET
		   submission_id = excluded.submission_id,
		   score = excluded.score`,
		awardType,
		award.SubmissionID,
		award.Score,
	)
	if err != nil {
		return fmt.Errorf("replace award: %w", err)
	}
	return nil
}

// ListAwards returns all stored award winners ordered by award type.
func (s *Store) ListAwards(ctx context.Context) ([]storage.AwardRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT award_type, submission_id, score FROM awards ORDER BY award_type ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	defer rows.Close()

	var awards []storage.AwardRecord
	for rows.Next() {
		var award storage.AwardRecord
		if err := rows.Scan(&award.AwardType, &award.SubmissionID, &award.Score); err != nil {
			return nil, fmt.Errorf("list awards: %w", err)
		}
		awards = append(awards, award)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list awards: %w", err)
	}
	return awards, nil
}
