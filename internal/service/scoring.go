package service

import (
	"fmt"
	"reda_kids_backend/internal/config"
	"reda_kids_backend/internal/util"
	"strings"
	"sync"
)

// NormalizeGameID strips the optional "game-" prefix. The result is only used for
// grouping, display and scoring lookups; repositories are always queried with the raw id.
func NormalizeGameID(gameID string) string {
	return strings.TrimPrefix(gameID, util.GameIDPrefix)
}

// ProgressRule decides how a game's completion percentage is measured.
type ProgressRule string

const (
	// ProgressFurthestActivity measures the furthest (level, activity) reached.
	ProgressFurthestActivity ProgressRule = "furthest_activity"
	// ProgressDistinctCompleted counts distinct completed activities.
	ProgressDistinctCompleted ProgressRule = "distinct_completed"
)

// CompletionRule decides how completed rows add to a game's completed counter.
type CompletionRule string

const (
	// CompletionPerRow adds one per completed row.
	CompletionPerRow CompletionRule = "per_row"
	// CompletionPerQuestion adds the row's totalQuestions, for games that store a
	// batch of sub-questions in one row.
	CompletionPerQuestion CompletionRule = "per_question"
)

type GameScoring struct {
	Progress   ProgressRule
	Completion CompletionRule
}

var DefaultGameScoring = GameScoring{
	Progress:   ProgressFurthestActivity,
	Completion: CompletionPerRow,
}

// DefaultScoringRules are the built-in per-game rules, keyed by normalized game id.
func DefaultScoringRules() map[string]GameScoring {
	return map[string]GameScoring{
		"calculos": {Progress: ProgressDistinctCompleted, Completion: CompletionPerQuestion},
	}
}

// ScoringTable is shared by the calculator and the aggregator. Rules can be
// replaced at runtime; readers always see a complete table.
type ScoringTable struct {
	mu    sync.RWMutex
	rules map[string]GameScoring
}

func NewScoringTable(rules map[string]GameScoring) *ScoringTable {
	t := &ScoringTable{}
	t.Replace(rules)
	return t
}

// Lookup accepts raw or normalized game ids.
func (t *ScoringTable) Lookup(gameID string) GameScoring {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if s, ok := t.rules[NormalizeGameID(gameID)]; ok {
		return s
	}
	return DefaultGameScoring
}

func (t *ScoringTable) Replace(rules map[string]GameScoring) {
	copied := make(map[string]GameScoring, len(rules))
	for id, s := range rules {
		copied[NormalizeGameID(id)] = s
	}
	t.mu.Lock()
	t.rules = copied
	t.mu.Unlock()
}

// ScoringRulesFromConfig overlays configured rules on the defaults.
// Empty fields keep the default rule for that field.
func ScoringRulesFromConfig(cfg config.GamesConfig) (map[string]GameScoring, error) {
	rules := DefaultScoringRules()
	for id, gc := range cfg.Scoring {
		s := DefaultGameScoring
		if existing, ok := rules[NormalizeGameID(id)]; ok {
			s = existing
		}
		if gc.Progress != "" {
			switch ProgressRule(gc.Progress) {
			case ProgressFurthestActivity, ProgressDistinctCompleted:
				s.Progress = ProgressRule(gc.Progress)
			default:
				return nil, fmt.Errorf("game %q: unknown progress rule %q", id, gc.Progress)
			}
		}
		if gc.Completion != "" {
			switch CompletionRule(gc.Completion) {
			case CompletionPerRow, CompletionPerQuestion:
				s.Completion = CompletionRule(gc.Completion)
			default:
				return nil, fmt.Errorf("game %q: unknown completion rule %q", id, gc.Completion)
			}
		}
		rules[NormalizeGameID(id)] = s
	}
	return rules, nil
}
