package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/company-research/internal/types"
)

// ResearchResult is a stored research response and its lifetime.
type ResearchResult struct {
	CacheKey    string                 `json:"cache_key"`
	CompanyName string                 `json:"company_name"`
	JobRole     string                 `json:"job_role"`
	Response    types.ResearchResponse `json:"response"`
	CreatedAt   time.Time              `json:"created_at"`
	ExpiresAt   time.Time              `json:"expires_at"`
}

// Fresh reports whether the result is still valid at now.
func (r *ResearchResult) Fresh(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}

// SaveResearch upserts a research response under key. The row expires ttl from now.
func (db *DB) SaveResearch(ctx context.Context, key string, resp *types.ResearchResponse, ttl time.Duration) error {
	if resp == nil {
		return fmt.Errorf("failed to save research %s: nil response", key)
	}
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal research: %w", err)
	}

	now := time.Now().UTC()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO research_results (cache_key, company_name, job_role, payload, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (cache_key) DO UPDATE
		 SET company_name = $2, job_role = $3, payload = $4, created_at = $5, expires_at = $6`,
		key, resp.CompanyName, resp.Role(), payload, now, expiresAt(now, ttl),
	)
	if err != nil {
		return fmt.Errorf("failed to save research %s: %w", key, err)
	}
	return nil
}

// GetFreshResearch returns the unexpired research stored under key, or nil if there is none.
func (db *DB) GetFreshResearch(ctx context.Context, key string) (*types.ResearchResponse, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT payload FROM research_results WHERE cache_key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get research %s: %w", key, err)
	}
	return decodeResearch(payload)
}

// ListRecentResearch returns the most recently stored unexpired results, newest first.
func (db *DB) ListRecentResearch(ctx context.Context, limit int) ([]ResearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT cache_key, company_name, job_role, payload, created_at, expires_at
		 FROM research_results WHERE expires_at > NOW()
		 ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list research: %w", err)
	}
	defer rows.Close()

	var results []ResearchResult
	for rows.Next() {
		var r ResearchResult
		var payload []byte
		if err := rows.Scan(&r.CacheKey, &r.CompanyName, &r.JobRole, &payload, &r.CreatedAt, &r.ExpiresAt); err != nil {
			return nil, fmt.Errorf("failed to scan research: %w", err)
		}
		resp, err := decodeResearch(payload)
		if err != nil {
			return nil, err
		}
		r.Response = *resp
		results = append(results, r)
	}
	return results, rows.Err()
}

// DeleteExpiredResearch removes expired rows and returns how many were deleted.
func (db *DB) DeleteExpiredResearch(ctx context.Context) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM research_results WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired research: %w", err)
	}
	return tag.RowsAffected(), nil
}

func expiresAt(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return now
	}
	return now.Add(ttl)
}

func decodeResearch(payload []byte) (*types.ResearchResponse, error) {
	var resp types.ResearchResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal research: %w", err)
	}
	return &resp, nil
}
