package models

import (
	"time"
)

// Vote is attached 1:1 to a vote-typed Message so it shows up in the chat
// timeline. GroupID is denormalized for membership checks.
type Vote struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	MessageID uint         `gorm:"not null;uniqueIndex" json:"message_id"`
	Message   Message      `gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE" json:"-"`
	GroupID   uint         `gorm:"not null;index" json:"group_id"`
	Question  string       `gorm:"type:text;not null" json:"question"`
	CreatedBy uint         `gorm:"not null" json:"created_by"`
	ExpiresAt *time.Time   `gorm:"index" json:"expires_at"`
	Options   []VoteOption `gorm:"foreignKey:VoteID" json:"options"`
	CreatedAt time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (Vote) TableName() string {
	return "votes"
}

// Expired reports whether the vote is past its deadline. A nil ExpiresAt
// never expires.
func (v *Vote) Expired(now time.Time) bool {
	return v.ExpiresAt != nil && now.After(*v.ExpiresAt)
}

// VoteOption ids are assigned at creation in submission order and never
// reused.
type VoteOption struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	VoteID   uint   `gorm:"not null;index:idx_vote_option_position,unique" json:"vote_id"`
	Position int    `gorm:"not null;index:idx_vote_option_position,unique" json:"position"`
	Text     string `gorm:"type:varchar(255);not null" json:"text"`
}

func (VoteOption) TableName() string {
	return "vote_options"
}

// VoteResponse keys on (VoteID, UserID) so a resubmission overwrites the
// prior choice in place.
type VoteResponse struct {
	VoteID    uint      `gorm:"primaryKey;autoIncrement:false" json:"vote_id"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	OptionID  uint      `gorm:"not null;index" json:"option_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (VoteResponse) TableName() string {
	return "vote_responses"
}
