package model

import "time"

// StudentStatistics is one game attempt of a student at (game, level, activity).
type StudentStatistics struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID        uint      `gorm:"not null;index:idx_stats_student_game" json:"studentId"`
	GameID           string    `gorm:"size:64;not null;index:idx_stats_student_game" json:"gameId"`
	Level            int       `gorm:"not null" json:"level"`
	Activity         int       `gorm:"not null" json:"activity"`
	Points           int       `gorm:"default:0" json:"points"`
	TotalPoints      int       `gorm:"default:0" json:"totalPoints"`
	Attempts         int       `gorm:"default:0" json:"attempts"`
	CorrectAnswers   *int      `json:"correctAnswers,omitempty"`
	TotalQuestions   *int      `json:"totalQuestions,omitempty"`
	CompletionTime   *int      `json:"completionTime,omitempty"` // seconds
	IsCompleted      bool      `gorm:"default:false;index" json:"isCompleted"`
	MaxUnlockedLevel int       `gorm:"default:1" json:"maxUnlockedLevel"`
	CreatedAt        time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (StudentStatistics) TableName() string {
	return "student_statistics"
}

// HasScore reports whether the row carries a usable answer count.
func (s *StudentStatistics) HasScore() bool {
	return s.CorrectAnswers != nil && s.TotalQuestions != nil && *s.TotalQuestions > 0
}

// Accuracy is correctAnswers/totalQuestions, or 0 when it is not defined.
func (s *StudentStatistics) Accuracy() float64 {
	if !s.HasScore() {
		return 0
	}
	return float64(*s.CorrectAnswers) / float64(*s.TotalQuestions)
}

// UpdateProgress records one more attempt worth points. Completion is sticky.
func (s *StudentStatistics) UpdateProgress(points int, completed bool) {
	s.Points += points
	s.TotalPoints += points
	s.Attempts++
	if completed {
		s.IsCompleted = true
	}
	s.UpdatedAt = time.Now()
}
