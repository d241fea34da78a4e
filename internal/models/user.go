package models

import (
	"time"
)

// User rows are provisioned by the identity system; this service only
// references them.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"type:varchar(128);uniqueIndex;not null" json:"-"`
	DisplayName string    `gorm:"type:varchar(128)" json:"display_name"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Name is what notifications and member lists show for a user.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
