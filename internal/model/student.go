package model

// Student is the profile owned by a user with the student role.
type Student struct {
	BaseModel
	UserID  uint     `gorm:"uniqueIndex;not null" json:"userId"`
	User    User     `gorm:"foreignKey:UserID" json:"user"`
	Grade   int      `gorm:"default:1" json:"grade"`
	Avatar  string   `gorm:"size:255" json:"avatar"`
	Courses []Course `gorm:"many2many:course_students;" json:"courses,omitempty"`
}

func (Student) TableName() string {
	return "students"
}
