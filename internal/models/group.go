package models

import (
	"time"
)

type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	IsPrivate   bool      `gorm:"default:false" json:"is_private"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	Creator     User      `gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMember rows are the sole authorization source for everything scoped to
// a group: there is no separate ACL.
type GroupMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	GroupID  uint      `gorm:"not null;index:idx_group_member,unique" json:"group_id"`
	Group    Group     `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE" json:"-"`
	UserID   uint      `gorm:"not null;index:idx_group_member,unique" json:"user_id"`
	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Role     string    `gorm:"type:varchar(20);default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// Group member role constants
const (
	GroupRoleAdmin  = "admin"
	GroupRoleMember = "member"
)

func (GroupMember) TableName() string {
	return "group_members"
}
