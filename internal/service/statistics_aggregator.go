package service

import (
	"math"
	"reda_kids_backend/internal/model"
	"time"
)

// StatisticsAggregator folds a student's statistics rows into a dashboard summary.
// It holds no state besides the scoring table, so one instance serves all requests.
type StatisticsAggregator struct {
	scoring *ScoringTable
}

func NewStatisticsAggregator(scoring *ScoringTable) *StatisticsAggregator {
	if scoring == nil {
		scoring = NewScoringTable(DefaultScoringRules())
	}
	return &StatisticsAggregator{scoring: scoring}
}

type gameAccumulator struct {
	progress   model.GameProgress
	scoreSum   float64
	scoredRows int
}

func (a *StatisticsAggregator) Aggregate(rows []model.StudentStatistics) model.AggregatedStudentStats {
	result := model.AggregatedStudentStats{
		ProgressByGame: map[string]model.GameProgress{},
	}
	if len(rows) == 0 {
		return result
	}

	gamesPlayed := make(map[string]struct{})
	perGame := make(map[string]*gameAccumulator)

	var (
		scoreSum   float64
		scoredRows int
		latest     time.Time
		hasLatest  bool
	)

	for i := range rows {
		row := &rows[i]
		gamesPlayed[row.GameID] = struct{}{}

		if !hasLatest || row.CreatedAt.After(latest) {
			latest = row.CreatedAt
			hasLatest = true
		}

		key := NormalizeGameID(row.GameID)
		acc, ok := perGame[key]
		if !ok {
			acc = &gameAccumulator{}
			perGame[key] = acc
		}

		if row.IsCompleted {
			acc.progress.Completed += completedUnits(row, a.scoring.Lookup(key).Completion)
		}
		if row.CompletionTime != nil {
			acc.progress.TotalTime += *row.CompletionTime
		}
		acc.progress.TotalAttempts += row.Attempts

		if row.HasScore() {
			pct := row.Accuracy() * 100
			acc.scoreSum += pct
			acc.scoredRows++
			scoreSum += pct
			scoredRows++
		}
	}

	for key, acc := range perGame {
		acc.progress.AverageScore = roundedMean(acc.scoreSum, acc.scoredRows)
		result.ProgressByGame[key] = acc.progress
	}

	result.TotalGamesPlayed = len(gamesPlayed)
	result.AverageScore = roundedMean(scoreSum, scoredRows)
	if hasLatest {
		ts := latest.UTC().Format(time.RFC3339)
		result.LastActivity = &ts
	}
	return result
}

func completedUnits(row *model.StudentStatistics, rule CompletionRule) int {
	if rule == CompletionPerQuestion {
		if row.TotalQuestions == nil {
			return 0
		}
		return *row.TotalQuestions
	}
	return 1
}

func roundedMean(sum float64, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}
