package service

import (
	"context"
	"encoding/json"
	"time"

	"cleanleb_backend/internal/model"
	"cleanleb_backend/internal/repository"

	"github.com/go-redis/redis/v8"
)

const (
	statsCacheKey = "cleanleb:stats"
	statsCacheTTL = 30 * time.Second
)

type StatsService struct {
	ReportRepo *repository.ReportRepository
	UserRepo   *repository.UserRepository
	Redis      *redis.Client
}

func NewStatsService(reportRepo *repository.ReportRepository, userRepo *repository.UserRepository, rdb *redis.Client) *StatsService {
	return &StatsService{
		ReportRepo: reportRepo,
		UserRepo:   userRepo,
		Redis:      rdb,
	}
}

type Stats struct {
	TotalReports    int64 `json:"totalReports"`
	PendingReports  int64 `json:"pendingReports"`
	ResolvedReports int64 `json:"resolvedReports"`
	TotalUsers      int64 `json:"totalUsers"`
}

func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats Stats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	total, err := s.ReportRepo.CountByStatus("")
	if err != nil {
		return nil, err
	}
	pending, err := s.ReportRepo.CountByStatus(model.StatusPending)
	if err != nil {
		return nil, err
	}
	resolved, err := s.ReportRepo.CountByStatus(model.StatusResolved)
	if err != nil {
		return nil, err
	}
	users, err := s.UserRepo.CountUsers()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalReports:    total,
		PendingReports:  pending,
		ResolvedReports: resolved,
		TotalUsers:      users,
	}

	if s.Redis != nil {
		if data, err := json.Marshal(stats); err == nil {
			s.Redis.Set(ctx, statsCacheKey, data, statsCacheTTL)
		}
	}

	return stats, nil
}
