package service

import (
	"context"
	"errors"
	"testing"

	"cleanleb_backend/internal/model"
	"cleanleb_backend/internal/repository"
	"cleanleb_backend/internal/util"

	"gorm.io/gorm"
)

func newUserService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	// Cache is optional; the leaderboard falls back to the database.
	return NewUserService(repository.NewUserRepository(db), nil), db
}

func TestGetProfile(t *testing.T) {
	svc, db := newUserService(t)
	user := createTestUser(t, db, "profile@example.com", model.Citizen)

	profile, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.User.Email != "profile@example.com" {
		t.Errorf("email = %s", profile.User.Email)
	}

	if _, err := svc.GetProfile(9999); !errors.Is(err, util.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	svc, db := newUserService(t)
	user := createTestUser(t, db, "update@example.com", model.Citizen)

	updated, err := svc.UpdateProfile(user.ID, UpdateProfileRequest{City: "Tripoli"})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.City != "Tripoli" {
		t.Errorf("city = %s, want Tripoli", updated.City)
	}
	// Untouched fields keep their values.
	if updated.Name != user.Name {
		t.Errorf("name changed to %s", updated.Name)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	svc, db := newUserService(t)

	points := map[string]int{
		"third@example.com":  5,
		"first@example.com":  50,
		"second@example.com": 20,
	}
	for email, p := range points {
		u := createTestUser(t, db, email, model.Citizen)
		if err := db.Model(u).Update("points", p).Error; err != nil {
			t.Fatalf("set points: %v", err)
		}
	}

	entries, err := svc.GetLeaderboard(context.Background())
	if err != nil {
		t.Fatalf("GetLeaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	wantPoints := []int{50, 20, 5}
	for i, entry := range entries {
		if entry.Rank != i+1 {
			t.Errorf("entry %d rank = %d", i, entry.Rank)
		}
		if entry.Points != wantPoints[i] {
			t.Errorf("entry %d points = %d, want %d", i, entry.Points, wantPoints[i])
		}
	}
}
