package model

// LastActivity is the furthest completed (level, activity) pair of a student in a game.
type LastActivity struct {
	Level    int `json:"level"`
	Activity int `json:"activity"`
}

// StudentProgress is recomputed per request and never stored.
type StudentProgress struct {
	Percentage             float64       `json:"percentage"`
	AbsoluteActivityNumber int           `json:"absoluteActivityNumber"`
	TotalActivities        int           `json:"totalActivities"`
	LastActivity           *LastActivity `json:"lastActivity"`
}

type GameProgress struct {
	Completed     int `json:"completed"`
	TotalTime     int `json:"totalTime"`
	AverageScore  int `json:"averageScore"`
	TotalAttempts int `json:"totalAttempts"`
}

type AggregatedStudentStats struct {
	TotalGamesPlayed int                     `json:"totalGamesPlayed"`
	AverageScore     int                     `json:"averageScore"`
	LastActivity     *string                 `json:"lastActivity"`
	ProgressByGame   map[string]GameProgress `json:"progressByGame"`
}

// GameProgressEntry pairs a game with the student's progress in it.
type GameProgressEntry struct {
	GameID   string          `json:"gameId"`
	GameName string          `json:"gameName"`
	Progress StudentProgress `json:"progress"`
}
