package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shramba/internal/model"
)

// CreateChallenge stores a new active challenge.
func CreateChallenge(ctx context.Context, db *sql.DB, c model.Challenge) (*model.Challenge, error) {
	if strings.TrimSpace(c.Title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrInvalidCatalogEntry)
	}
	if c.Points < 0 {
		return nil, fmt.Errorf("%w: points must not be negative", ErrInvalidCatalogEntry)
	}
	switch c.Type {
	case model.ChallengeDaily, model.ChallengeWeekly, model.ChallengeMonthly:
	default:
		return nil, fmt.Errorf("%w: unknown challenge type %q", ErrInvalidCatalogEntry, c.Type)
	}

	c.ID = uuid.NewString()
	c.Status = model.ChallengeActive
	c.CreatedAt = time.Now().UTC()

	_, err := db.ExecContext(ctx,
		`INSERT INTO challenges (id, title, description, points, type, deadline, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Description, c.Points, c.Type, nullTime(c.Deadline), c.Status, c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating challenge: %w", err)
	}
	return &c, nil
}

// ListActiveChallenges returns challenges still marked active, soonest
// deadline first. Challenges without a deadline come last.
func ListActiveChallenges(ctx context.Context, db *sql.DB) ([]model.Challenge, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, title, description, points, type, deadline, status, created_at
		 FROM challenges WHERE status = ?
		 ORDER BY deadline IS NULL, deadline, created_at`,
		model.ChallengeActive,
	)
	if err != nil {
		return nil, fmt.Errorf("listing challenges: %w", err)
	}
	defer rows.Close()

	var challenges []model.Challenge
	for rows.Next() {
		var c model.Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Points, &c.Type,
			&c.Deadline, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning challenge: %w", err)
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}
