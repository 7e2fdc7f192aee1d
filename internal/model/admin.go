package model

type Admin struct {
	BaseModel
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"user"`
	Super  bool `gorm:"default:false" json:"super"`
}

func (Admin) TableName() string {
	return "admins"
}
