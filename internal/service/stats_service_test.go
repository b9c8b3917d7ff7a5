package service

import (
	"context"
	"testing"

	"cleanleb_backend/internal/model"
	"cleanleb_backend/internal/repository"
)

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	reportRepo := repository.NewReportRepository(db)
	userRepo := repository.NewUserRepository(db)
	reports := NewReportService(reportRepo, userRepo, db)
	svc := NewStatsService(reportRepo, userRepo, nil)

	reporter := createTestUser(t, db, "stats@example.com", model.Citizen)
	staff := createTestUser(t, db, "stats-staff@example.com", model.Municipal)

	first, err := reports.Create(reporter.ID, sampleReportRequest(), nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := reports.Create(reporter.ID, sampleReportRequest(), nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := reports.UpdateStatus(first.ID, staff.ID, "resolved"); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalReports != 2 || stats.PendingReports != 1 || stats.ResolvedReports != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalUsers != 2 {
		t.Errorf("totalUsers = %d, want 2", stats.TotalUsers)
	}
}
