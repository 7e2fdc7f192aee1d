package service

import (
	"context"
	"errors"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/repository"
	"reda_kids_backend/internal/util"
	"reda_kids_backend/pkg/monitoring"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StatisticsStore interface {
	StatisticsSource
	Create(ctx context.Context, stat *model.StudentStatistics) error
	UpdateMaxUnlockedLevel(ctx context.Context, id uint, level int) error
	ListByStudent(ctx context.Context, studentID uint, gameID string) ([]model.StudentStatistics, error)
	GetTotalPoints(ctx context.Context, studentID uint, gameID string) (int, error)
}

type GameCatalog interface {
	FindByID(ctx context.Context, id string) (*model.Game, error)
	List(ctx context.Context, enabledOnly bool) ([]model.Game, error)
}

// SummaryCache returns repository.ErrCacheMiss from Get when nothing is cached.
// Set must refuse to write, with repository.ErrStaleSummary, when Invalidate
// ran after Version was read.
type SummaryCache interface {
	Get(ctx context.Context, studentID uint) (*model.AggregatedStudentStats, error)
	Version(ctx context.Context, studentID uint) (int64, error)
	Set(ctx context.Context, studentID uint, version int64, stats *model.AggregatedStudentStats) error
	Invalidate(ctx context.Context, studentID uint) error
}

type StatisticsService struct {
	stats      StatisticsStore
	games      GameCatalog
	levels     LevelSource
	calculator *ProgressCalculator
	aggregator *StatisticsAggregator
	cache      SummaryCache
	log        *zap.Logger
}

// NewStatisticsService wires the statistics use cases. cache may be nil.
func NewStatisticsService(
	stats StatisticsStore,
	games GameCatalog,
	levels LevelSource,
	calculator *ProgressCalculator,
	aggregator *StatisticsAggregator,
	cache SummaryCache,
	log *zap.Logger,
) *StatisticsService {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatisticsService{
		stats:      stats,
		games:      games,
		levels:     levels,
		calculator: calculator,
		aggregator: aggregator,
		cache:      cache,
		log:        log,
	}
}

type AttemptInput struct {
	GameID         string
	Level          int
	Activity       int
	Points         int
	CorrectAnswers *int
	TotalQuestions *int
	CompletionTime *int
	IsCompleted    bool
}

func (in AttemptInput) validate() error {
	if in.Level < 1 || in.Activity < 1 || in.Points < 0 {
		return util.ErrInvalidAttempt
	}
	if in.CorrectAnswers != nil && *in.CorrectAnswers < 0 {
		return util.ErrInvalidAttempt
	}
	if in.TotalQuestions != nil && *in.TotalQuestions < 0 {
		return util.ErrInvalidAttempt
	}
	if in.CorrectAnswers != nil && in.TotalQuestions != nil && *in.CorrectAnswers > *in.TotalQuestions {
		return util.ErrInvalidAttempt
	}
	if in.CompletionTime != nil && *in.CompletionTime < 0 {
		return util.ErrInvalidAttempt
	}
	return nil
}

// SubmitAttempt records one played activity and returns the stored row.
func (s *StatisticsService) SubmitAttempt(ctx context.Context, studentID uint, in AttemptInput) (*model.StudentStatistics, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if _, err := s.playableGame(ctx, in.GameID); err != nil {
		return nil, err
	}
	if err := s.ensureLevelConfigured(ctx, in.GameID, in.Level, in.Activity); err != nil {
		return nil, err
	}

	previous, err := s.stats.GetTotalPoints(ctx, studentID, in.GameID)
	if err != nil {
		return nil, err
	}

	stat := &model.StudentStatistics{
		StudentID:        studentID,
		GameID:           in.GameID,
		Level:            in.Level,
		Activity:         in.Activity,
		TotalPoints:      previous,
		CorrectAnswers:   in.CorrectAnswers,
		TotalQuestions:   in.TotalQuestions,
		CompletionTime:   in.CompletionTime,
		MaxUnlockedLevel: 1,
	}
	stat.UpdateProgress(in.Points, in.IsCompleted)

	if err := s.stats.Create(ctx, stat); err != nil {
		return nil, err
	}

	if maxLevel := s.calculator.CalculateMaxUnlockedLevel(ctx, studentID, in.GameID); maxLevel != stat.MaxUnlockedLevel {
		if err := s.stats.UpdateMaxUnlockedLevel(ctx, stat.ID, maxLevel); err != nil {
			s.log.Warn("Failed to store max unlocked level", zap.Uint("statistics_id", stat.ID), zap.Error(err))
		} else {
			stat.MaxUnlockedLevel = maxLevel
		}
	}

	monitoring.AttemptsSubmitted.WithLabelValues(NormalizeGameID(in.GameID), strconv.FormatBool(stat.IsCompleted)).Inc()
	s.invalidateSummary(ctx, studentID)
	return stat, nil
}

func (s *StatisticsService) ListStatistics(ctx context.Context, studentID uint, gameID string) ([]model.StudentStatistics, error) {
	return s.stats.ListByStudent(ctx, studentID, gameID)
}

// Summary aggregates every row of the student, served from the cache when possible.
func (s *StatisticsService) Summary(ctx context.Context, studentID uint) (*model.AggregatedStudentStats, error) {
	cacheable := false
	var version int64
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, studentID)
		switch {
		case err == nil:
			monitoring.SummaryCache.WithLabelValues("hit").Inc()
			return cached, nil
		case errors.Is(err, repository.ErrCacheMiss):
			monitoring.SummaryCache.WithLabelValues("miss").Inc()
		default:
			monitoring.SummaryCache.WithLabelValues("error").Inc()
			s.log.Warn("Summary cache read failed", zap.Uint("student_id", studentID), zap.Error(err))
		}

		// read before the rows so a concurrent submit is detected on write
		if version, err = s.cache.Version(ctx, studentID); err == nil {
			cacheable = true
		}
	}

	rows, err := s.stats.ListByStudent(ctx, studentID, "")
	if err != nil {
		return nil, err
	}
	summary := s.aggregator.Aggregate(rows)

	if cacheable {
		err := s.cache.Set(ctx, studentID, version, &summary)
		switch {
		case err == nil:
		case errors.Is(err, repository.ErrStaleSummary):
			monitoring.SummaryCache.WithLabelValues("stale").Inc()
		default:
			s.log.Warn("Summary cache write failed", zap.Uint("student_id", studentID), zap.Error(err))
		}
	}
	return &summary, nil
}

func (s *StatisticsService) Progress(ctx context.Context, studentID uint, gameID string) (model.StudentProgress, error) {
	if _, err := s.game(ctx, gameID); err != nil {
		return model.StudentProgress{}, err
	}
	return s.calculator.CalculateStudentProgress(ctx, studentID, gameID), nil
}

// AllProgress reports progress for every enabled game in display order.
func (s *StatisticsService) AllProgress(ctx context.Context, studentID uint) ([]model.GameProgressEntry, error) {
	games, err := s.games.List(ctx, true)
	if err != nil {
		return nil, err
	}

	entries := make([]model.GameProgressEntry, 0, len(games))
	for _, g := range games {
		entries = append(entries, model.GameProgressEntry{
			GameID:   g.ID,
			GameName: g.Name,
			Progress: s.calculator.CalculateStudentProgress(ctx, studentID, g.ID),
		})
	}
	return entries, nil
}

func (s *StatisticsService) MaxUnlockedLevel(ctx context.Context, studentID uint, gameID string) (int, error) {
	if _, err := s.game(ctx, gameID); err != nil {
		return 0, err
	}
	return s.calculator.CalculateMaxUnlockedLevel(ctx, studentID, gameID), nil
}

func (s *StatisticsService) game(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.games.FindByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *StatisticsService) playableGame(ctx context.Context, gameID string) (*model.Game, error) {
	game, err := s.game(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.Enabled {
		return nil, util.ErrGameNotFound
	}
	return game, nil
}

// ensureLevelConfigured rejects levels the game does not define. Games without
// any configured level accept every attempt.
func (s *StatisticsService) ensureLevelConfigured(ctx context.Context, gameID string, level, activity int) error {
	levels, err := s.levels.FindByGameID(ctx, gameID)
	if err != nil {
		return err
	}
	if len(levels) == 0 {
		return nil
	}
	for _, l := range levels {
		if l.Level == level {
			if l.ActivitiesCount > 0 && activity > l.ActivitiesCount {
				return util.ErrInvalidAttempt
			}
			return nil
		}
	}
	return util.ErrInvalidAttempt
}

func (s *StatisticsService) invalidateSummary(ctx context.Context, studentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, studentID); err != nil {
		s.log.Warn("Summary cache invalidation failed", zap.Uint("student_id", studentID), zap.Error(err))
	}
}
