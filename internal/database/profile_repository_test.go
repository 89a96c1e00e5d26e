package database_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/storescope/internal/database"
	"github.com/jonesrussell/storescope/internal/domain"
)

func newProfileRepo(t *testing.T) (*database.ProfileRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	db := sqlx.NewDb(mockDB, "postgres")
	repo := database.NewProfileRepository(db)

	return repo, mock, func() { mockDB.Close() }
}

func testProfile() *domain.BrandProfile {
	return &domain.BrandProfile{
		WebsiteURL: "https://shop.example.com",
		BrandName:  "Acme Goods",
		FetchedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Policies:   map[domain.PolicyKind]string{domain.PolicyReturns: "30 days"},
	}
}

func TestProfileRepository_UpsertProfile(t *testing.T) {
	repo, mock, cleanup := newProfileRepo(t)
	defer cleanup()

	profile := testProfile()

	mock.ExpectExec("INSERT INTO storefront_profiles").
		WithArgs(profile.WebsiteURL, profile.BrandName, sqlmock.AnyArg(), profile.FetchedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpsertProfile(context.Background(), profile); err != nil {
		t.Fatalf("UpsertProfile() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestProfileRepository_GetProfile(t *testing.T) {
	repo, mock, cleanup := newProfileRepo(t)
	defer cleanup()

	payload, err := json.Marshal(testProfile())
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	mock.ExpectQuery("SELECT profile FROM storefront_profiles").
		WithArgs("https://shop.example.com").
		WillReturnRows(sqlmock.NewRows([]string{"profile"}).AddRow(payload))

	profile, err := repo.GetProfile(context.Background(), "https://shop.example.com")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.BrandName != "Acme Goods" {
		t.Errorf("BrandName = %q, want Acme Goods", profile.BrandName)
	}
	if profile.Policies[domain.PolicyReturns] != "30 days" {
		t.Errorf("Policies = %v, want returns entry round-tripped", profile.Policies)
	}
}

func TestProfileRepository_GetProfile_NotFound(t *testing.T) {
	repo, mock, cleanup := newProfileRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT profile FROM storefront_profiles").
		WithArgs("https://missing.example.com").
		WillReturnRows(sqlmock.NewRows([]string{"profile"}))

	_, err := repo.GetProfile(context.Background(), "https://missing.example.com")
	if !errors.Is(err, database.ErrProfileNotFound) {
		t.Fatalf("GetProfile() error = %v, want ErrProfileNotFound", err)
	}
}

func TestProfileRepository_ListWebsiteURLs(t *testing.T) {
	repo, mock, cleanup := newProfileRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT website_url FROM storefront_profiles").
		WillReturnRows(sqlmock.NewRows([]string{"website_url"}).
			AddRow("https://a.example.com").
			AddRow("https://b.example.com"))

	urls, err := repo.ListWebsiteURLs(context.Background())
	if err != nil {
		t.Fatalf("ListWebsiteURLs() error = %v", err)
	}
	if len(urls) != 2 || urls[0] != "https://a.example.com" {
		t.Errorf("urls = %v, want two rows in order", urls)
	}
}

func TestProfileRepository_SaveReport(t *testing.T) {
	repo, mock, cleanup := newProfileRepo(t)
	defer cleanup()

	report := &domain.UnifiedReport{
		ID:          "11111111-2222-3333-4444-555555555555",
		HealthScore: 7.2,
		GeneratedAt: time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO storefront_reports").
		WithArgs(report.ID, "https://shop.example.com", sqlmock.AnyArg(), report.GeneratedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SaveReport(context.Background(), "https://shop.example.com", report); err != nil {
		t.Fatalf("SaveReport() error = %v", err)
	}
}

func TestProfileRepository_LatestReport(t *testing.T) {
	repo, mock, cleanup := newProfileRepo(t)
	defer cleanup()

	stored := &domain.UnifiedReport{ID: "r1", HealthScore: 6.8}
	payload, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}

	mock.ExpectQuery("SELECT report FROM storefront_reports").
		WithArgs("https://shop.example.com").
		WillReturnRows(sqlmock.NewRows([]string{"report"}).AddRow(payload))

	report, err := repo.LatestReport(context.Background(), "https://shop.example.com")
	if err != nil {
		t.Fatalf("LatestReport() error = %v", err)
	}
	if report.ID != "r1" || report.HealthScore != 6.8 {
		t.Errorf("report = %+v, want the stored row round-tripped", report)
	}
}

func TestProfileRepository_LatestReport_NotFound(t *testing.T) {
	repo, mock, cleanup := newProfileRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT report FROM storefront_reports").
		WithArgs("https://missing.example.com").
		WillReturnRows(sqlmock.NewRows([]string{"report"}))

	_, err := repo.LatestReport(context.Background(), "https://missing.example.com")
	if !errors.Is(err, database.ErrProfileNotFound) {
		t.Fatalf("LatestReport() error = %v, want ErrProfileNotFound", err)
	}
}
