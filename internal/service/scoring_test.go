package service

import (
	"reda_kids_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGameID(t *testing.T) {
	assert.Equal(t, "calculos", NormalizeGameID("game-calculos"))
	assert.Equal(t, "calculos", NormalizeGameID("calculos"))
	assert.Equal(t, "calculos", NormalizeGameID(NormalizeGameID("game-calculos")))
	assert.Equal(t, "mygame-x", NormalizeGameID("mygame-x"))
	assert.Equal(t, "", NormalizeGameID("game-"))
}

func TestScoringTableLookup(t *testing.T) {
	table := NewScoringTable(DefaultScoringRules())

	calculos := table.Lookup("game-calculos")
	assert.Equal(t, ProgressDistinctCompleted, calculos.Progress)
	assert.Equal(t, CompletionPerQuestion, calculos.Completion)
	assert.Equal(t, calculos, table.Lookup("calculos"))

	assert.Equal(t, DefaultGameScoring, table.Lookup("game-escritura"))
	assert.Equal(t, DefaultGameScoring, table.Lookup("unknown"))
}

func TestScoringTableReplace(t *testing.T) {
	table := NewScoringTable(DefaultScoringRules())
	table.Replace(map[string]GameScoring{
		"game-conteo": {Progress: ProgressDistinctCompleted, Completion: CompletionPerRow},
	})

	assert.Equal(t, DefaultGameScoring, table.Lookup("game-calculos"))
	assert.Equal(t, ProgressDistinctCompleted, table.Lookup("conteo").Progress)
}

func TestScoringRulesFromConfig(t *testing.T) {
	rules, err := ScoringRulesFromConfig(config.GamesConfig{
		Scoring: map[string]config.GameScoringConfig{
			"game-escritura": {Completion: "per_question"},
			"calculos":       {Progress: "furthest_activity"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, GameScoring{Progress: ProgressFurthestActivity, Completion: CompletionPerQuestion}, rules["escritura"])
	assert.Equal(t, GameScoring{Progress: ProgressFurthestActivity, Completion: CompletionPerQuestion}, rules["calculos"])
}

func TestScoringRulesFromConfigRejectsUnknownRule(t *testing.T) {
	_, err := ScoringRulesFromConfig(config.GamesConfig{
		Scoring: map[string]config.GameScoringConfig{"calculos": {Progress: "fastest"}},
	})
	assert.Error(t, err)

	_, err = ScoringRulesFromConfig(config.GamesConfig{
		Scoring: map[string]config.GameScoringConfig{"calculos": {Completion: "per_level"}},
	})
	assert.Error(t, err)
}

func TestScoringRulesFromEmptyConfigKeepsDefaults(t *testing.T) {
	rules, err := ScoringRulesFromConfig(config.GamesConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultScoringRules(), rules)
}
