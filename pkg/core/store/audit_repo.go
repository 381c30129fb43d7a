package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"declaration_audit/pkg/core/report"
)

// AuditRepository stores finished audit reports keyed by declarant.
// The key is the declarant identifier when known, otherwise the
// normalized full name.
type AuditRepository interface {
	Save(ctx context.Context, declarantKey string, rep *report.Report) error
	Load(ctx context.Context, declarantKey string) (*report.Report, error)
}

// AuditRepo is the Postgres-backed repository.
type AuditRepo struct{}

// NewAuditRepo creates a new repository instance.
func NewAuditRepo() *AuditRepo {
	return &AuditRepo{}
}

// Save persists a report, replacing any previous run for the same declarant.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS audit_reports (
//   declarant_key TEXT PRIMARY KEY,
//   full_name TEXT,
//   report_json JSONB,
//   updated_at TIMESTAMPTZ
// );
func (r *AuditRepo) Save(ctx context.Context, declarantKey string, rep *report.Report) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO audit_reports (declarant_key, full_name, report_json, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (declarant_key)
		DO UPDATE SET
			full_name = EXCLUDED.full_name,
			report_json = EXCLUDED.report_json,
			updated_at = EXCLUDED.updated_at;
	`

	if _, err := pool.Exec(ctx, query, declarantKey, rep.FullName, jsonData, time.Now()); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// Load retrieves the most recent report for a declarant.
func (r *AuditRepo) Load(ctx context.Context, declarantKey string) (*report.Report, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT report_json FROM audit_reports WHERE declarant_key = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, declarantKey).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no report found for declarant %s", declarantKey)
		}
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal(jsonData, &rep); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &rep, nil
}

// MemoryAuditRepo keeps reports in process memory. Used in tests and in
// runs without a configured database.
type MemoryAuditRepo struct {
	mu      sync.RWMutex
	reports map[string]*report.Report
}

// NewMemoryAuditRepo creates an empty in-memory repository.
func NewMemoryAuditRepo() *MemoryAuditRepo {
	return &MemoryAuditRepo{reports: make(map[string]*report.Report)}
}

func (r *MemoryAuditRepo) Save(ctx context.Context, declarantKey string, rep *report.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports[declarantKey] = rep
	return nil
}

func (r *MemoryAuditRepo) Load(ctx context.Context, declarantKey string) (*report.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reports[declarantKey]
	if !ok {
		return nil, fmt.Errorf("no report found for declarant %s", declarantKey)
	}
	return rep, nil
}
