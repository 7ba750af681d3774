package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"phishshield/internal/urlrisk"
	"phishshield/internal/urlrisk/ports"
)

// PostgresStore persists assessments in the url_analyses table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed history store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, a *ports.Assessment) error {
	if a == nil || a.Analysis == nil {
		return nil
	}
	analysis, err := json.Marshal(a.Analysis)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	factors, err := json.Marshal(a.Analysis.Assessment.Factors)
	if err != nil {
		return fmt.Errorf("encode factors: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO url_analyses
			(id, request_id, url, host, score, risk_level, is_phishing, cached, factors, analysis, analyzed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`, a.ID, a.RequestID, a.Analysis.URL, a.Analysis.Host, a.Analysis.Assessment.Score,
		string(a.Level), a.IsPhishing, a.Cached, factors, analysis, a.AnalyzedAt)
	if err != nil {
		return fmt.Errorf("insert url analysis: %w", err)
	}
	return nil
}

// Recent returns up to limit assessments, newest first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]*ports.Assessment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, request_id, risk_level, is_phishing, cached, analysis, analyzed_at
		FROM url_analyses
		ORDER BY analyzed_at DESC, seq DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query url analyses: %w", err)
	}
	defer rows.Close()

	out := make([]*ports.Assessment, 0, limit)
	for rows.Next() {
		var (
			a     ports.Assessment
			level string
			raw   []byte
		)
		if err := rows.Scan(&a.ID, &a.RequestID, &level, &a.IsPhishing, &a.Cached, &raw, &a.AnalyzedAt); err != nil {
			return nil, fmt.Errorf("scan url analysis: %w", err)
		}
		var analysis urlrisk.Analysis
		if err := json.Unmarshal(raw, &analysis); err != nil {
			return nil, fmt.Errorf("decode url analysis %s: %w", a.ID, err)
		}
		a.Level = urlrisk.RiskLevel(level)
		a.Analysis = &analysis
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate url analyses: %w", err)
	}
	return out, nil
}
