package service

import (
	"reda_kids_backend/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateEmpty(t *testing.T) {
	agg := NewStatisticsAggregator(nil)

	got := agg.Aggregate(nil)

	assert.Equal(t, 0, got.TotalGamesPlayed)
	assert.Equal(t, 0, got.AverageScore)
	assert.Nil(t, got.LastActivity)
	assert.NotNil(t, got.ProgressByGame)
	assert.Empty(t, got.ProgressByGame)
}

func TestAggregateMixedGames(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []model.StudentStatistics{
		{GameID: "game-escritura", IsCompleted: true, Attempts: 1, CorrectAnswers: intPtr(8), TotalQuestions: intPtr(10), CompletionTime: intPtr(30), CreatedAt: base},
		{GameID: "escritura", IsCompleted: false, Attempts: 2, CorrectAnswers: intPtr(5), TotalQuestions: intPtr(10), CreatedAt: base.Add(time.Minute)},
		{GameID: "game-ordenamiento", IsCompleted: true, Attempts: 1, CompletionTime: intPtr(45), CreatedAt: base.Add(2 * time.Hour)},
	}

	got := NewStatisticsAggregator(nil).Aggregate(rows)

	// raw ids are distinct even when they normalize to the same game
	assert.Equal(t, 3, got.TotalGamesPlayed)
	assert.Equal(t, 65, got.AverageScore)
	require.NotNil(t, got.LastActivity)
	assert.Equal(t, "2024-03-01T12:00:00Z", *got.LastActivity)

	require.Len(t, got.ProgressByGame, 2)
	assert.Equal(t, model.GameProgress{Completed: 1, TotalTime: 30, AverageScore: 65, TotalAttempts: 3}, got.ProgressByGame["escritura"])
	assert.Equal(t, model.GameProgress{Completed: 1, TotalTime: 45, AverageScore: 0, TotalAttempts: 1}, got.ProgressByGame["ordenamiento"])
}

func TestAggregateCountsCompletedRowsPerGame(t *testing.T) {
	base := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	rows := []model.StudentStatistics{
		{GameID: "game-escritura", Level: 1, Activity: 1, IsCompleted: true, Attempts: 1, CreatedAt: base},
		{GameID: "game-escritura", Level: 1, Activity: 2, IsCompleted: true, Attempts: 1, CreatedAt: base.Add(time.Minute)},
		{GameID: "game-ordenamiento", Level: 1, Activity: 1, IsCompleted: false, Attempts: 1, CreatedAt: base.Add(2 * time.Minute)},
	}

	got := NewStatisticsAggregator(nil).Aggregate(rows)

	assert.Equal(t, 2, got.TotalGamesPlayed)
	assert.Equal(t, 2, got.ProgressByGame["escritura"].Completed)
	assert.Equal(t, 2, got.ProgressByGame["escritura"].TotalAttempts)
	assert.Equal(t, 0, got.ProgressByGame["ordenamiento"].Completed)
}

func TestAggregateCalculosCountsQuestions(t *testing.T) {
	now := time.Now()
	rows := []model.StudentStatistics{
		{GameID: "game-calculos", IsCompleted: true, Attempts: 1, CorrectAnswers: intPtr(9), TotalQuestions: intPtr(10), CreatedAt: now},
		{GameID: "game-calculos", IsCompleted: true, Attempts: 1, CorrectAnswers: intPtr(4), TotalQuestions: intPtr(5), CreatedAt: now},
		{GameID: "game-calculos", IsCompleted: false, Attempts: 1, CorrectAnswers: intPtr(1), TotalQuestions: intPtr(5), CreatedAt: now},
	}

	got := NewStatisticsAggregator(nil).Aggregate(rows)

	assert.Equal(t, 15, got.ProgressByGame["calculos"].Completed)
	assert.Equal(t, 3, got.ProgressByGame["calculos"].TotalAttempts)
	// (90 + 80 + 20) / 3
	assert.Equal(t, 63, got.ProgressByGame["calculos"].AverageScore)
}

func TestAggregateIgnoresRowsWithoutQuestions(t *testing.T) {
	rows := []model.StudentStatistics{
		{GameID: "game-conteo", CorrectAnswers: intPtr(3), TotalQuestions: intPtr(0)},
		{GameID: "game-conteo", TotalQuestions: intPtr(4)},
		{GameID: "game-conteo", CorrectAnswers: intPtr(2), TotalQuestions: intPtr(3)},
	}

	got := NewStatisticsAggregator(nil).Aggregate(rows)

	assert.Equal(t, 67, got.AverageScore)
	assert.Equal(t, 67, got.ProgressByGame["conteo"].AverageScore)
}

func TestAggregateLastActivityTieKeepsFirst(t *testing.T) {
	ts := time.Date(2024, 5, 2, 8, 30, 0, 0, time.FixedZone("BRT", -3*3600))
	rows := []model.StudentStatistics{
		{ID: 1, GameID: "game-conteo", CreatedAt: ts},
		{ID: 2, GameID: "game-conteo", CreatedAt: ts},
	}

	got := NewStatisticsAggregator(nil).Aggregate(rows)

	require.NotNil(t, got.LastActivity)
	assert.Equal(t, "2024-05-02T11:30:00Z", *got.LastActivity)
}

func TestAggregateIsIdempotent(t *testing.T) {
	rows := []model.StudentStatistics{
		{GameID: "game-escritura", IsCompleted: true, Attempts: 1, CorrectAnswers: intPtr(3), TotalQuestions: intPtr(4), CreatedAt: time.Now()},
		{GameID: "game-calculos", IsCompleted: true, Attempts: 2, CorrectAnswers: intPtr(7), TotalQuestions: intPtr(10), CreatedAt: time.Now()},
	}
	agg := NewStatisticsAggregator(nil)

	first := agg.Aggregate(rows)
	second := agg.Aggregate(rows)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.AverageScore, 0)
	assert.LessOrEqual(t, first.AverageScore, 100)
}

func TestAggregateFollowsScoringTable(t *testing.T) {
	table := NewScoringTable(map[string]GameScoring{
		"escritura": {Progress: ProgressFurthestActivity, Completion: CompletionPerQuestion},
	})
	rows := []model.StudentStatistics{
		{GameID: "game-escritura", IsCompleted: true, TotalQuestions: intPtr(6)},
		{GameID: "game-calculos", IsCompleted: true, TotalQuestions: intPtr(6)},
	}

	got := NewStatisticsAggregator(table).Aggregate(rows)

	assert.Equal(t, 6, got.ProgressByGame["escritura"].Completed)
	assert.Equal(t, 1, got.ProgressByGame["calculos"].Completed)
}
