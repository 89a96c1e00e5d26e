package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/storescope/internal/domain"
)

// ErrProfileNotFound is returned when no stored profile matches the URL.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository handles database operations for storefront profiles
// and their generated reports.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// UpsertProfile stores a fetched profile, replacing any previous row for
// the same website URL. The full profile is kept as JSONB alongside the
// columns the scheduler and listings query directly.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *domain.BrandProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	query := `
		INSERT INTO storefront_profiles (website_url, brand_name, profile, fetched_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (website_url)
		DO UPDATE SET brand_name = $2, profile = $3, fetched_at = $4, updated_at = NOW()
	`

	if _, execErr := r.db.ExecContext(ctx, query, profile.WebsiteURL, profile.BrandName, payload, profile.FetchedAt); execErr != nil {
		return fmt.Errorf("failed to upsert profile: %w", execErr)
	}

	return nil
}

// GetProfile returns the stored profile for a website URL.
func (r *ProfileRepository) GetProfile(ctx context.Context, websiteURL string) (*domain.BrandProfile, error) {
	query := `SELECT profile FROM storefront_profiles WHERE website_url = $1`

	var payload []byte
	if err := r.db.GetContext(ctx, &payload, query, websiteURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to select profile: %w", err)
	}

	var profile domain.BrandProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	return &profile, nil
}

// ListWebsiteURLs returns every website URL with a stored profile,
// oldest fetch first, so scheduled refreshes revisit stale entries
// before fresh ones.
func (r *ProfileRepository) ListWebsiteURLs(ctx context.Context) ([]string, error) {
	query := `SELECT website_url FROM storefront_profiles ORDER BY fetched_at ASC`

	var urls []string
	if err := r.db.SelectContext(ctx, &urls, query); err != nil {
		return nil, fmt.Errorf("failed to list website urls: %w", err)
	}

	return urls, nil
}

// SaveReport stores a generated unified report for a website.
func (r *ProfileRepository) SaveReport(ctx context.Context, websiteURL string, report *domain.UnifiedReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO storefront_reports (id, website_url, report, generated_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, execErr := r.db.ExecContext(ctx, query, report.ID, websiteURL, payload, report.GeneratedAt); execErr != nil {
		return fmt.Errorf("failed to insert report: %w", execErr)
	}

	return nil
}

// LatestReport returns the most recent unified report for a website URL.
func (r *ProfileRepository) LatestReport(ctx context.Context, websiteURL string) (*domain.UnifiedReport, error) {
	query := `
		SELECT report FROM storefront_reports
		WHERE website_url = $1
		ORDER BY generated_at DESC
		LIMIT 1
	`

	var payload []byte
	if err := r.db.GetContext(ctx, &payload, query, websiteURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to select report: %w", err)
	}

	var report domain.UnifiedReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}
