package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReportService 只读投影：尝试历史、尝试详情、排行榜、学习报告。
// 不修改任何状态。
type ReportService struct {
	AttemptRepo *repository.AttemptRepository
	XPRepo      *repository.XPRepository
	UserRepo    *repository.UserRepository
	Redis       *redis.Client
	Config      *config.Config
}

func NewReportService(attemptRepo *repository.AttemptRepository, xpRepo *repository.XPRepository, userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *ReportService {
	return &ReportService{
		AttemptRepo: attemptRepo,
		XPRepo:      xpRepo,
		UserRepo:    userRepo,
		Redis:       rdb,
		Config:      cfg,
	}
}

// ListAttempts 用户在某测验下的全部尝试（一人一次规则下通常0或1条）
func (s *ReportService) ListAttempts(userID, quizID uint) ([]model.QuizAttempt, error) {
	return s.AttemptRepo.ListByUserAndQuiz(userID, quizID)
}

// GetAttemptDetail 尝试详情，强制归属校验：别人的尝试一律404
func (s *ReportService) GetAttemptDetail(attemptID, userID uint) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindByIDAndUser(attemptID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, err
}

type LeaderboardEntry struct {
	Rank          int    `json:"rank"`
	UserID        uint   `json:"userId"`
	UserName      string `json:"userName"`
	ObtainedMarks int    `json:"obtainedMarks"`
	TotalMarks    int    `json:"totalMarks"`
	TimeTaken     int    `json:"timeTaken"`
}

// Leaderboard 测验排行榜，Redis短TTL缓存兜住热点读
func (s *ReportService) Leaderboard(ctx context.Context, quizID uint) ([]LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("quiz:leaderboard:%d", quizID)

	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	attempts, err := s.AttemptRepo.TopByQuiz(quizID, s.Config.Quiz.LeaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(attempts))
	for i, a := range attempts {
		name := ""
		if user, err := s.UserRepo.FindByID(a.UserID); err == nil {
			name = user.Name
		}
		entries = append(entries, LeaderboardEntry{
			Rank:          i + 1,
			UserID:        a.UserID,
			UserName:      name,
			ObtainedMarks: a.ObtainedMarks,
			TotalMarks:    a.TotalMarks,
			TimeTaken:     a.TimeTaken,
		})
	}

	if s.Redis != nil {
		if data, err := json.Marshal(entries); err == nil {
			ttl := time.Duration(s.Config.Quiz.LeaderboardCacheTTL) * time.Second
			if err := s.Redis.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}

type PerformanceReport struct {
	TotalAttempts     int     `json:"totalAttempts"`
	PassedAttempts    int     `json:"passedAttempts"`
	AveragePercentage float64 `json:"averagePercentage"`
	TotalXPEarned     int     `json:"totalXpEarned"`
}

// Performance 用户的跨测验学习报告
func (s *ReportService) Performance(userID uint) (*PerformanceReport, error) {
	attempts, err := s.AttemptRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	report := &PerformanceReport{TotalAttempts: len(attempts)}
	sumPct := float64(0)
	for _, a := range attempts {
		pct := float64(0)
		if a.TotalMarks > 0 {
			pct = float64(a.ObtainedMarks) / float64(a.TotalMarks) * 100
		}
		sumPct += pct
		if a.TotalMarks > 0 && a.ObtainedMarks >= passMarksOf(a) {
			report.PassedAttempts++
		}
	}
	if len(attempts) > 0 {
		report.AveragePercentage = sumPct / float64(len(attempts))
	}

	totalXP, err := s.XPRepo.TotalByUser(userID)
	if err != nil {
		return nil, err
	}
	report.TotalXPEarned = totalXP

	return report, nil
}

// passMarksOf 从快照推回及格线（40%向上取整），避免回表读测验缓存
func passMarksOf(a model.QuizAttempt) int {
	return (a.TotalMarks*2 + 4) / 5
}
