package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"grantboard/internal/models"
)

const foundationColumns = `
	id, name, url, focus_areas, grant_min, grant_max,
	application_deadline, rolling_applications, fit_score, status, notes,
	created_at, updated_at
`

type FoundationRepository struct {
	pool *pgxpool.Pool
}

func NewFoundationRepository(pool *pgxpool.Pool) *FoundationRepository {
	return &FoundationRepository{pool: pool}
}

func scanFoundation(row pgx.Row) (*models.Foundation, error) {
	var f models.Foundation
	err := row.Scan(
		&f.ID,
		&f.Name,
		&f.URL,
		&f.FocusAreas,
		&f.GrantMin,
		&f.GrantMax,
		&f.ApplicationDeadline,
		&f.RollingApplications,
		&f.FitScore,
		&f.Status,
		&f.Notes,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FoundationRepository) Create(ctx context.Context, f *models.Foundation) error {
	query := `
		INSERT INTO foundations (name, url, focus_areas, grant_min, grant_max,
			application_deadline, rolling_applications, fit_score, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, status, created_at, updated_at
	`

	status := f.Status
	if status == "" {
		status = models.StatusResearch
	}

	return r.pool.QueryRow(ctx, query,
		f.Name,
		f.URL,
		f.FocusAreas,
		f.GrantMin,
		f.GrantMax,
		f.ApplicationDeadline,
		f.RollingApplications,
		f.FitScore,
		status,
		f.Notes,
	).Scan(&f.ID, &f.Status, &f.CreatedAt, &f.UpdatedAt)
}

// List returns foundations matching the filters, best fit first. Rows
// without a fit score sort after any scored row; ties break on the
// earlier deadline, with deadline-less rows last.
func (r *FoundationRepository) List(ctx context.Context, filters models.FoundationFilters) ([]models.Foundation, error) {
	query := "SELECT " + foundationColumns + " FROM foundations WHERE 1=1"
	var args []any

	if filters.Status != "" && filters.Status != "all" {
		args = append(args, filters.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	if filters.FitMin > 0 {
		args = append(args, filters.FitMin)
		query += fmt.Sprintf(" AND fit_score >= $%d", len(args))
	}

	if filters.Rolling != nil {
		args = append(args, *filters.Rolling)
		query += fmt.Sprintf(" AND rolling_applications = $%d", len(args))
	}

	query += " ORDER BY fit_score DESC NULLS LAST, application_deadline ASC NULLS LAST"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foundations []models.Foundation
	for rows.Next() {
		f, err := scanFoundation(rows)
		if err != nil {
			return nil, err
		}
		foundations = append(foundations, *f)
	}

	return foundations, rows.Err()
}

func (r *FoundationRepository) GetByID(ctx context.Context, id int64) (*models.Foundation, error) {
	query := "SELECT " + foundationColumns + " FROM foundations WHERE id = $1"

	f, err := scanFoundation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return f, nil
}

// Update applies the fields named in the patch and nothing else. An
// empty patch is a no-op that reports zero rows and leaves updated_at
// untouched; any applied patch refreshes updated_at in the same
// statement. Returns the number of rows affected (0 or 1).
func (r *FoundationRepository) Update(ctx context.Context, id int64, patch models.FoundationUpdate) (int64, error) {
	var sets []string
	var args []any

	if patch.HasStatus() {
		args = append(args, patch.Status.Value)
		sets = append(sets, fmt.Sprintf("status = $%d", len(args)))
	}

	if patch.FitScore.Set {
		if patch.FitScore.Valid {
			args = append(args, patch.FitScore.Value)
		} else {
			args = append(args, nil)
		}
		sets = append(sets, fmt.Sprintf("fit_score = $%d", len(args)))
	}

	if patch.Notes.Set {
		if patch.Notes.Valid {
			args = append(args, patch.Notes.Value)
		} else {
			args = append(args, nil)
		}
		sets = append(sets, fmt.Sprintf("notes = $%d", len(args)))
	}

	if patch.ApplicationDeadline.Set {
		if patch.ApplicationDeadline.Valid {
			args = append(args, patch.ApplicationDeadline.Value)
		} else {
			args = append(args, nil)
		}
		sets = append(sets, fmt.Sprintf("application_deadline = $%d", len(args)))
	}

	if len(sets) == 0 {
		return 0, nil
	}

	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE foundations SET %s WHERE id = $%d",
		strings.Join(sets, ", "),
		len(args),
	)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Stats computes the dashboard aggregate snapshot. The deadline window
// is 90 calendar days from today inclusive.
func (r *FoundationRepository) Stats(ctx context.Context) (*models.FoundationStats, error) {
	stats := &models.FoundationStats{}

	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM foundations").Scan(&stats.Total)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM foundations WHERE fit_score >= 8").Scan(&stats.HighFit)
	if err != nil {
		return nil, err
	}

	// AVG over zero rows is NULL, never a division by zero.
	err = r.pool.QueryRow(ctx,
		"SELECT AVG(fit_score)::float8 FROM foundations WHERE fit_score IS NOT NULL",
	).Scan(&stats.AvgFitScore)
	if err != nil {
		return nil, err
	}

	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM foundations
		WHERE application_deadline IS NOT NULL
		  AND application_deadline >= CURRENT_DATE
		  AND application_deadline <= CURRENT_DATE + 90
	`).Scan(&stats.UpcomingDeadlines)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT status, COUNT(*) FROM foundations
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sc models.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		stats.ByStatus = append(stats.ByStatus, sc)
	}

	return stats, rows.Err()
}

// UpcomingDeadlines returns foundations whose deadline falls within
// [today, today+windowDays], earliest first. Rolling-application
// foundations without an explicit deadline are excluded; the view is
// date-driven only.
func (r *FoundationRepository) UpcomingDeadlines(ctx context.Context, windowDays int) ([]models.Foundation, error) {
	query := "SELECT " + foundationColumns + `
		FROM foundations
		WHERE application_deadline IS NOT NULL
		  AND application_deadline >= CURRENT_DATE
		  AND application_deadline <= CURRENT_DATE + $1::int
		ORDER BY application_deadline ASC
	`

	rows, err := r.pool.Query(ctx, query, windowDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var foundations []models.Foundation
	for rows.Next() {
		f, err := scanFoundation(rows)
		if err != nil {
			return nil, err
		}
		foundations = append(foundations, *f)
	}

	return foundations, rows.Err()
}
