package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Friendship is the single row for an unordered user pair. UserLoID/UserHiID
// are the normalized pair columns backing the unique index, so concurrent
// requests from both directions are serialized by the database.
type Friendship struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"not null;index" json:"requester_id"`
	Requester   User      `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"requester,omitempty"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Recipient   User      `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"recipient,omitempty"`
	UserLoID    uint      `gorm:"not null;index:idx_friendship_pair,unique" json:"-"`
	UserHiID    uint      `gorm:"not null;index:idx_friendship_pair,unique" json:"-"`
	Status      string    `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Friendship status constants
const (
	FriendshipStatusPending  = "pending"
	FriendshipStatusAccepted = "accepted"
	FriendshipStatusRejected = "rejected"
)

// BeforeSave fills the normalized pair columns.
func (f *Friendship) BeforeSave(tx *gorm.DB) error {
	if f.RequesterID == f.RecipientID {
		return fmt.Errorf("requester and recipient must differ")
	}
	if f.RequesterID < f.RecipientID {
		f.UserLoID, f.UserHiID = f.RequesterID, f.RecipientID
	} else {
		f.UserLoID, f.UserHiID = f.RecipientID, f.RequesterID
	}
	return nil
}

func (Friendship) TableName() string {
	return "friendships"
}
