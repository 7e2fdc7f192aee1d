package service

import (
	"context"
	"errors"
	"reda_kids_backend/internal/model"
	"reda_kids_backend/internal/repository"
	"reda_kids_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type statisticsFixture struct {
	svc    *StatisticsService
	stats  *mockStatsStore
	games  *mockGameCatalog
	levels *mockLevelSource
	cache  *mockSummaryCache
}

func newStatisticsFixture(withCache bool) *statisticsFixture {
	f := &statisticsFixture{
		stats:  new(mockStatsStore),
		games:  new(mockGameCatalog),
		levels: new(mockLevelSource),
		cache:  new(mockSummaryCache),
	}
	scoring := NewScoringTable(DefaultScoringRules())
	calc := NewProgressCalculator(f.stats, f.levels, scoring, nil)

	var cache SummaryCache
	if withCache {
		cache = f.cache
	}
	f.svc = NewStatisticsService(f.stats, f.games, f.levels, calc, NewStatisticsAggregator(scoring), cache, nil)
	return f
}

var escritura = &model.Game{ID: "game-escritura", Name: "Escritura", Enabled: true}

func TestSubmitAttempt(t *testing.T) {
	ctx := context.Background()

	t.Run("stores row and unlocks next level", func(t *testing.T) {
		f := newStatisticsFixture(true)
		f.games.On("FindByID", mock.Anything, "game-escritura").Return(escritura, nil)
		f.levels.On("FindByGameID", mock.Anything, "game-escritura").Return(escrituraLevels, nil)
		f.stats.On("GetTotalPoints", mock.Anything, uint(4), "game-escritura").Return(40, nil)
		f.stats.On("Create", mock.Anything, mock.AnythingOfType("*model.StudentStatistics")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.StudentStatistics).ID = 9
			}).Return(nil)
		f.stats.On("GetLastCompletedActivity", mock.Anything, uint(4), "game-escritura").
			Return(&model.LastActivity{Level: 1, Activity: 5}, nil)
		f.stats.On("UpdateMaxUnlockedLevel", mock.Anything, uint(9), 2).Return(nil)
		f.cache.On("Invalidate", mock.Anything, uint(4)).Return(nil)

		stat, err := f.svc.SubmitAttempt(ctx, 4, AttemptInput{
			GameID:         "game-escritura",
			Level:          1,
			Activity:       5,
			Points:         10,
			CorrectAnswers: intPtr(4),
			TotalQuestions: intPtr(5),
			IsCompleted:    true,
		})

		require.NoError(t, err)
		assert.Equal(t, uint(9), stat.ID)
		assert.Equal(t, 10, stat.Points)
		assert.Equal(t, 50, stat.TotalPoints)
		assert.Equal(t, 1, stat.Attempts)
		assert.True(t, stat.IsCompleted)
		assert.Equal(t, 2, stat.MaxUnlockedLevel)
		f.stats.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	t.Run("rejects more correct answers than questions", func(t *testing.T) {
		f := newStatisticsFixture(true)

		_, err := f.svc.SubmitAttempt(ctx, 4, AttemptInput{
			GameID: "game-escritura", Level: 1, Activity: 1,
			CorrectAnswers: intPtr(6), TotalQuestions: intPtr(5),
		})

		assert.ErrorIs(t, err, util.ErrInvalidAttempt)
		f.games.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown game", func(t *testing.T) {
		f := newStatisticsFixture(true)
		f.games.On("FindByID", mock.Anything, "game-nope").Return(nil, gorm.ErrRecordNotFound)

		_, err := f.svc.SubmitAttempt(ctx, 4, AttemptInput{GameID: "game-nope", Level: 1, Activity: 1})

		assert.ErrorIs(t, err, util.ErrGameNotFound)
	})

	t.Run("disabled game", func(t *testing.T) {
		f := newStatisticsFixture(true)
		f.games.On("FindByID", mock.Anything, "game-conteo").Return(&model.Game{ID: "game-conteo"}, nil)

		_, err := f.svc.SubmitAttempt(ctx, 4, AttemptInput{GameID: "game-conteo", Level: 1, Activity: 1})

		assert.ErrorIs(t, err, util.ErrGameNotFound)
	})

	t.Run("level not configured", func(t *testing.T) {
		f := newStatisticsFixture(true)
		f.games.On("FindByID", mock.Anything, "game-escritura").Return(escritura, nil)
		f.levels.On("FindByGameID", mock.Anything, "game-escritura").Return(escrituraLevels, nil)

		_, err := f.svc.SubmitAttempt(ctx, 4, AttemptInput{GameID: "game-escritura", Level: 7, Activity: 1})

		assert.ErrorIs(t, err, util.ErrInvalidAttempt)
		f.stats.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	rows := []model.StudentStatistics{
		{GameID: "game-escritura", IsCompleted: true, Attempts: 1, CorrectAnswers: intPtr(1), TotalQuestions: intPtr(2)},
	}

	t.Run("cache hit skips the database", func(t *testing.T) {
		f := newStatisticsFixture(true)
		cached := &model.AggregatedStudentStats{TotalGamesPlayed: 3, ProgressByGame: map[string]model.GameProgress{}}
		f.cache.On("Get", mock.Anything, uint(4)).Return(cached, nil)

		got, err := f.svc.Summary(ctx, 4)

		require.NoError(t, err)
		assert.Same(t, cached, got)
		f.stats.AssertNotCalled(t, "ListByStudent", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss aggregates and stores", func(t *testing.T) {
		f := newStatisticsFixture(true)
		f.cache.On("Get", mock.Anything, uint(4)).Return(nil, repository.ErrCacheMiss)
		f.cache.On("Version", mock.Anything, uint(4)).Return(int64(7), nil)
		f.stats.On("ListByStudent", mock.Anything, uint(4), "").Return(rows, nil)
		f.cache.On("Set", mock.Anything, uint(4), int64(7), mock.Anything).Return(nil)

		got, err := f.svc.Summary(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 1, got.TotalGamesPlayed)
		assert.Equal(t, 50, got.AverageScore)
		f.cache.AssertExpectations(t)
	})

	t.Run("broken cache still answers", func(t *testing.T) {
		f := newStatisticsFixture(true)
		f.cache.On("Get", mock.Anything, uint(4)).Return(nil, errors.New("redis down"))
		f.cache.On("Version", mock.Anything, uint(4)).Return(int64(0), errors.New("redis down"))
		f.stats.On("ListByStudent", mock.Anything, uint(4), "").Return(rows, nil)

		got, err := f.svc.Summary(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 1, got.TotalGamesPlayed)
		f.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("submit during aggregation does not cache the old summary", func(t *testing.T) {
		f := newStatisticsFixture(true)
		f.cache.On("Get", mock.Anything, uint(4)).Return(nil, repository.ErrCacheMiss)
		f.cache.On("Version", mock.Anything, uint(4)).Return(int64(2), nil)
		f.stats.On("ListByStudent", mock.Anything, uint(4), "").Return(rows, nil)
		// the version read before the rows travels with the write; the store rejects it
		f.cache.On("Set", mock.Anything, uint(4), int64(2), mock.Anything).Return(repository.ErrStaleSummary)

		got, err := f.svc.Summary(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 1, got.TotalGamesPlayed)
		f.cache.AssertExpectations(t)
	})

	t.Run("without cache", func(t *testing.T) {
		f := newStatisticsFixture(false)
		f.stats.On("ListByStudent", mock.Anything, uint(4), "").Return([]model.StudentStatistics{}, nil)

		got, err := f.svc.Summary(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 0, got.TotalGamesPlayed)
		assert.Nil(t, got.LastActivity)
	})

	t.Run("database error", func(t *testing.T) {
		f := newStatisticsFixture(false)
		f.stats.On("ListByStudent", mock.Anything, uint(4), "").Return(nil, errors.New("db down"))

		_, err := f.svc.Summary(ctx, 4)

		assert.Error(t, err)
	})
}

func TestProgressEndpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown game", func(t *testing.T) {
		f := newStatisticsFixture(false)
		f.games.On("FindByID", mock.Anything, "game-x").Return(nil, gorm.ErrRecordNotFound)

		_, err := f.svc.Progress(ctx, 1, "game-x")
		assert.ErrorIs(t, err, util.ErrGameNotFound)

		_, err = f.svc.MaxUnlockedLevel(ctx, 1, "game-x")
		assert.ErrorIs(t, err, util.ErrGameNotFound)
	})

	t.Run("all enabled games", func(t *testing.T) {
		f := newStatisticsFixture(false)
		f.games.On("List", mock.Anything, true).Return([]model.Game{
			{ID: "game-calculos", Name: "Cálculos"},
			{ID: "game-escritura", Name: "Escritura"},
		}, nil)
		f.levels.On("GetTotalActivitiesCount", mock.Anything, "game-calculos").Return(int64(20), nil)
		f.stats.On("GetDistinctCompletedActivities", mock.Anything, uint(1), "game-calculos").Return(int64(5), nil)
		f.stats.On("GetLastCompletedActivity", mock.Anything, uint(1), "game-escritura").Return(nil, nil)

		entries, err := f.svc.AllProgress(ctx, 1)

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "game-calculos", entries[0].GameID)
		assert.Equal(t, 25.0, entries[0].Progress.Percentage)
		assert.Equal(t, model.StudentProgress{}, entries[1].Progress)
	})
}
