package service

import (
	"context"
	"math"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/pkg/monitoring"
	"reda_kids_backend/pkg/tracing"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// StatisticsSource is the read side of the statistics store used for progress.
type StatisticsSource interface {
	// GetLastCompletedActivity returns nil, nil when nothing was completed yet.
	GetLastCompletedActivity(ctx context.Context, studentID uint, gameID string) (*model.LastActivity, error)
	GetDistinctCompletedActivities(ctx context.Context, studentID uint, gameID string) (int64, error)
}

// LevelSource is the level-configuration store. FindByGameID results are unordered.
type LevelSource interface {
	GetTotalActivitiesCount(ctx context.Context, gameID string) (int64, error)
	FindByGameID(ctx context.Context, gameID string) ([]model.GameLevel, error)
}

// ProgressCalculator derives how far a student got in a game.
//
// Failure policy: the calculator never returns an error. A failing repository call
// is logged at warn level, counted in progress_calculation_fallbacks_total and the
// result degrades to zero or to whatever was already known. A statistics outage
// must not keep a student from seeing the dashboard, even with a wrong number.
type ProgressCalculator struct {
	stats   StatisticsSource
	levels  LevelSource
	scoring *ScoringTable
	log     *zap.Logger
}

func NewProgressCalculator(stats StatisticsSource, levels LevelSource, scoring *ScoringTable, log *zap.Logger) *ProgressCalculator {
	if log == nil {
		log = zap.NewNop()
	}
	if scoring == nil {
		scoring = NewScoringTable(DefaultScoringRules())
	}
	return &ProgressCalculator{
		stats:   stats,
		levels:  levels,
		scoring: scoring,
		log:     log,
	}
}

func (c *ProgressCalculator) CalculateStudentProgress(ctx context.Context, studentID uint, gameID string) model.StudentProgress {
	ctx, span := tracing.Tracer.Start(ctx, "ProgressCalculator.CalculateStudentProgress")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("student.id", int64(studentID)),
		attribute.String("game.id", gameID),
	)

	if c.scoring.Lookup(gameID).Progress == ProgressDistinctCompleted {
		return c.distinctCompletedProgress(ctx, studentID, gameID)
	}
	return c.furthestActivityProgress(ctx, studentID, gameID)
}

func (c *ProgressCalculator) furthestActivityProgress(ctx context.Context, studentID uint, gameID string) model.StudentProgress {
	last, err := c.stats.GetLastCompletedActivity(ctx, studentID, gameID)
	if err != nil {
		c.degrade(ctx, "last_completed_activity", studentID, gameID, err)
		return model.StudentProgress{}
	}
	if last == nil {
		return model.StudentProgress{}
	}

	total, err := c.levels.GetTotalActivitiesCount(ctx, gameID)
	if err != nil {
		c.degrade(ctx, "total_activities", studentID, gameID, err)
		return model.StudentProgress{LastActivity: last}
	}
	if total <= 0 {
		return model.StudentProgress{LastActivity: last}
	}

	absolute := c.CalculateAbsoluteActivityNumber(ctx, gameID, *last)

	return model.StudentProgress{
		Percentage:             percentage(int64(absolute), total),
		AbsoluteActivityNumber: absolute,
		TotalActivities:        int(total),
		LastActivity:           last,
	}
}

func (c *ProgressCalculator) distinctCompletedProgress(ctx context.Context, studentID uint, gameID string) model.StudentProgress {
	total, err := c.levels.GetTotalActivitiesCount(ctx, gameID)
	if err != nil {
		c.degrade(ctx, "total_activities", studentID, gameID, err)
		return model.StudentProgress{}
	}
	if total <= 0 {
		return model.StudentProgress{}
	}

	completed, err := c.stats.GetDistinctCompletedActivities(ctx, studentID, gameID)
	if err != nil {
		c.degrade(ctx, "distinct_completed_activities", studentID, gameID, err)
		return model.StudentProgress{TotalActivities: int(total)}
	}

	return model.StudentProgress{
		Percentage:             percentage(completed, total),
		AbsoluteActivityNumber: int(completed),
		TotalActivities:        int(total),
	}
}

// CalculateAbsoluteActivityNumber turns (level, activity) into a position counted
// across all levels: the activities of every lower level plus the activity itself.
// It falls back to last.Activity when the level is not configured or the lookup fails.
func (c *ProgressCalculator) CalculateAbsoluteActivityNumber(ctx context.Context, gameID string, last model.LastActivity) int {
	levels, err := c.levels.FindByGameID(ctx, gameID)
	if err != nil {
		c.degrade(ctx, "absolute_activity_number", 0, gameID, err)
		return last.Activity
	}

	absolute := 0
	for _, l := range sortedLevels(levels) {
		if l.Level < last.Level {
			absolute += l.ActivitiesCount
			continue
		}
		if l.Level == last.Level {
			return absolute + last.Activity
		}
		break
	}
	return last.Activity
}

// CalculateMaxUnlockedLevel returns the highest level the student may play.
// A level whose activities were all reached unlocks the next configured level,
// or level+1 when it is the last one configured.
func (c *ProgressCalculator) CalculateMaxUnlockedLevel(ctx context.Context, studentID uint, gameID string) int {
	const initialLevel = 1

	last, err := c.stats.GetLastCompletedActivity(ctx, studentID, gameID)
	if err != nil {
		c.degrade(ctx, "max_unlocked_level", studentID, gameID, err)
		return initialLevel
	}
	if last == nil {
		return initialLevel
	}

	levels, err := c.levels.FindByGameID(ctx, gameID)
	if err != nil {
		c.degrade(ctx, "max_unlocked_level", studentID, gameID, err)
		return last.Level
	}

	sorted := sortedLevels(levels)
	for i, l := range sorted {
		if l.Level != last.Level {
			continue
		}
		if last.Activity < l.ActivitiesCount {
			return last.Level
		}
		if i+1 < len(sorted) {
			return sorted[i+1].Level
		}
		return last.Level + 1
	}
	return last.Level
}

func (c *ProgressCalculator) degrade(ctx context.Context, op string, studentID uint, gameID string, err error) {
	monitoring.ProgressFallbacks.WithLabelValues(op).Inc()
	c.log.Warn("progress calculation degraded to fallback",
		zap.String("operation", op),
		zap.Uint("student_id", studentID),
		zap.String("game_id", gameID),
		zap.Error(err),
	)
	_, span := tracing.Tracer.Start(ctx, "ProgressCalculator.fallback")
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	span.End()
}

func sortedLevels(levels []model.GameLevel) []model.GameLevel {
	sorted := make([]model.GameLevel, len(levels))
	copy(sorted, levels)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })
	return sorted
}

// percentage is done*100/total clamped to [0, 100].
func percentage(done, total int64) float64 {
	if total <= 0 {
		return 0
	}
	p := float64(done*100) / float64(total)
	return math.Max(0, math.Min(100, p))
}
