package models

import (
	"time"
)

// Notification is created by the fan-out engine and mutated only by its
// owner. Metadata is a JSON object whose shape depends on Type:
//
//	friend_request:  {"friendship_id", "requester_id"}
//	friend_accepted: {"friendship_id", "accepter_id"}
//	comment:         {"note_id", "commenter_id"}
//	friend_review:   {"note_id", "reviewer_id", "restaurant_id", "restaurant_name", "rating"}
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"type:varchar(32);not null;index" json:"type"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Message   string    `gorm:"type:text" json:"message"`
	Link      string    `gorm:"type:varchar(255)" json:"link"`
	Metadata  string    `gorm:"type:text" json:"metadata,omitempty"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// Notification type constants
const (
	NotificationTypeFriendRequest  = "friend_request"
	NotificationTypeFriendAccepted = "friend_accepted"
	NotificationTypeComment        = "comment"
	NotificationTypeFriendReview   = "friend_review"
)

func (Notification) TableName() string {
	return "notifications"
}
