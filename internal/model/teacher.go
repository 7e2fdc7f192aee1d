package model

type Teacher struct {
	BaseModel
	UserID    uint     `gorm:"uniqueIndex;not null" json:"userId"`
	User      User     `gorm:"foreignKey:UserID" json:"user"`
	Specialty string   `gorm:"size:100" json:"specialty"`
	Courses   []Course `gorm:"foreignKey:TeacherID" json:"courses,omitempty"`
}

func (Teacher) TableName() string {
	return "teachers"
}
