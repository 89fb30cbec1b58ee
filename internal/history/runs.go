package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/smby/sunny-demo/internal/api"
	"github.com/smby/sunny-demo/internal/export"
)

// Run is one recorded processing run: the summary numbers plus snapshots of
// the exportable artifacts, so past runs can be re-exported after the
// in-memory result is replaced.
type Run struct {
	ID             string
	CreatedAt      time.Time
	BrandName      string
	Language       string
	UseAI          bool
	TotalLeads     int
	AverageScore   float64
	TierA          int
	TierB          int
	TierC          int
	CSVSnapshot    string
	ReportSnapshot string
}

// NewRun snapshots a successful processing result.
func NewRun(res *api.ProcessResult) Run {
	return Run{
		ID:             uuid.NewString(),
		CreatedAt:      Now(),
		BrandName:      res.BrandName,
		Language:       res.Language,
		UseAI:          res.UseAI,
		TotalLeads:     res.Summary.TotalLeads,
		AverageScore:   res.Summary.AverageScore,
		TierA:          res.Summary.TierA,
		TierB:          res.Summary.TierB,
		TierC:          res.Summary.TierC,
		CSVSnapshot:    export.LeadsCSV(res.Leads),
		ReportSnapshot: export.Report(res),
	}
}

// RunRepo handles run rows.
type RunRepo struct {
	db *sql.DB
}

func NewRunRepo(db *sql.DB) *RunRepo { return &RunRepo{db: db} }

func (r *RunRepo) Insert(ctx context.Context, run Run) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO runs(
	 id, created_at, brand_name, language, use_ai, total_leads, average_score,
	 tier_a, tier_b, tier_c, csv_snapshot, report_snapshot)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`,
		run.ID, run.CreatedAt, run.BrandName, run.Language, run.UseAI, run.TotalLeads,
		run.AverageScore, run.TierA, run.TierB, run.TierC, run.CSVSnapshot, run.ReportSnapshot)
	return err
}

// List returns runs newest first, up to limit (0 = no limit).
func (r *RunRepo) List(ctx context.Context, limit int) ([]Run, error) {
	query := `
	SELECT id, created_at, brand_name, language, use_ai, total_leads, average_score,
	       tier_a, tier_b, tier_c, csv_snapshot, report_snapshot
	FROM runs ORDER BY created_at DESC, id`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.BrandName, &run.Language, &run.UseAI,
			&run.TotalLeads, &run.AverageScore, &run.TierA, &run.TierB, &run.TierC,
			&run.CSVSnapshot, &run.ReportSnapshot); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// Get returns one run by id, or nil if absent.
func (r *RunRepo) Get(ctx context.Context, id string) (*Run, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, created_at, brand_name, language, use_ai, total_leads, average_score,
	       tier_a, tier_b, tier_c, csv_snapshot, report_snapshot
	FROM runs WHERE id = ?`, id)
	var run Run
	err := row.Scan(&run.ID, &run.CreatedAt, &run.BrandName, &run.Language, &run.UseAI,
		&run.TotalLeads, &run.AverageScore, &run.TierA, &run.TierB, &run.TierC,
		&run.CSVSnapshot, &run.ReportSnapshot)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Delete removes one run.
func (r *RunRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	return err
}
