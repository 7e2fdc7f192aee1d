package util

// GameIDPrefix is the optional prefix of stored game ids.
const GameIDPrefix = "game-"

// DefaultGrade is assigned to students and courses created without a grade.
const DefaultGrade = 1

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)
