package models

type User struct {
	ID             uint64  `gorm:"primarykey" json:"id"`
	Username       string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email          string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	HashedPassword string  `gorm:"type:varchar(255);not null" json:"-"`
	IsActive       bool    `gorm:"default:true" json:"is_active"`
	IsAdmin        bool    `gorm:"default:false" json:"is_admin"`
	Company        string  `gorm:"type:varchar(255)" json:"company"`
	PictureID      *uint64 `json:"picture_id"`

	// Two distinct has-many relations to the same table
	TasksCreated  []Task `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedTasks []Task `gorm:"foreignKey:AssignedToID" json:"-"`
}
