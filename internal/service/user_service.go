package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cleanleb_backend/internal/model"
	"cleanleb_backend/internal/repository"
	"cleanleb_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	leaderboardCacheKey = "cleanleb:leaderboard"
	leaderboardCacheTTL = 60 * time.Second
	leaderboardSize     = 10
)

type UserService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
}

func NewUserService(userRepo *repository.UserRepository, rdb *redis.Client) *UserService {
	return &UserService{
		UserRepo: userRepo,
		Redis:    rdb,
	}
}

type LeaderboardEntry struct {
	Rank   int           `json:"rank"`
	Name   string        `json:"name"`
	Points int           `json:"points"`
	Badges []model.Badge `json:"badges"`
}

type ProfileResponse struct {
	User         *model.User `json:"user"`
	ReportsCount int         `json:"reportsCount"`
}

func (s *UserService) GetProfile(userID uint) (*ProfileResponse, error) {
	user, err := s.UserRepo.FindByIDWithBadges(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return &ProfileResponse{User: user, ReportsCount: user.ReportsCount}, nil
}

type UpdateProfileRequest struct {
	Name   string `json:"name"`
	City   string `json:"city"`
	Region string `json:"region"`
	Avatar string `json:"avatar"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.Region != "" {
		user.Region = req.Region
	}
	if req.Avatar != "" {
		user.Avatar = req.Avatar
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetLeaderboard serves the top users by points, cached for a minute.
// Stale ranks after a point award are acceptable.
func (s *UserService) GetLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, leaderboardCacheKey).Result(); err == nil {
			var entries []LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByPoints(leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:   i + 1,
			Name:   user.Name,
			Points: user.Points,
			Badges: user.Badges,
		}
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, leaderboardCacheKey, data, leaderboardCacheTTL)
		}
	}

	return entries, nil
}
