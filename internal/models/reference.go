package models

// Static lookup tables. The task domain validates against these on writes
// but never mutates them.

type ActivityType struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

type ActivityGroup struct {
	ID              uint64  `gorm:"primarykey" json:"id"`
	Name            string  `gorm:"type:varchar(100);not null" json:"name"`
	SubCategoryID   *uint64 `json:"sub_category_id"`
	SubCategoryName string  `gorm:"type:varchar(100)" json:"sub_category_name"`
}

type Stage struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

type CoreGroup struct {
	ID         uint64  `gorm:"primarykey" json:"id"`
	CategoryID *uint64 `json:"category_id"`
	Category   string  `gorm:"type:varchar(100)" json:"category"`
	Name       string  `gorm:"type:varchar(255)" json:"name"`
}
