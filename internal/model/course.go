package model

type Course struct {
	BaseModel
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Grade       int       `gorm:"default:1" json:"grade"`
	TeacherID   uint      `gorm:"index;not null" json:"teacherId"`
	Teacher     *Teacher  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Students    []Student `gorm:"many2many:course_students;" json:"students,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
