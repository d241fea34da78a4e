package models

import (
	"time"
)

// Restaurant is owned by the catalog subsystem; kept here so bucket-list rows
// and review notifications can reference it.
type Restaurant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null;index" json:"name"`
	City      string    `gorm:"type:varchar(128)" json:"city"`
	Cuisine   string    `gorm:"type:varchar(64)" json:"cuisine"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}
