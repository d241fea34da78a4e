package models

import (
	"time"
)

// Message is append-only. (CreatedAt, ID) is the monotonic ordering key for
// the polling cursor: ID breaks ties when two messages share a millisecond.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;index:idx_messages_group_created,priority:1" json:"group_id"`
	SenderID  uint      `gorm:"not null;index" json:"sender_id"`
	Sender    User      `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Type      string    `gorm:"type:varchar(16);default:'text'" json:"type"`
	Metadata  string    `gorm:"type:text" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_messages_group_created,priority:2" json:"created_at"`
}

// Message type constants
const (
	MessageTypeText   = "text"
	MessageTypeVote   = "vote"
	MessageTypeSystem = "system"
)

func (Message) TableName() string {
	return "messages"
}
