package models

import (
	"time"
)

// BucketListItem is an idempotent "I want to try this" record, unique per
// (user, restaurant).
type BucketListItem struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	UserID            uint       `gorm:"not null;index:idx_bucket_user_restaurant,unique" json:"user_id"`
	User              User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	RestaurantID      uint       `gorm:"not null;index:idx_bucket_user_restaurant,unique" json:"restaurant_id"`
	Restaurant        Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"restaurant,omitempty"`
	Note              string     `gorm:"type:text" json:"note"`
	IsVisited         bool       `gorm:"default:false" json:"is_visited"`
	AddedFromFriendID *uint      `gorm:"index" json:"added_from_friend_id"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (BucketListItem) TableName() string {
	return "bucket_list_items"
}
