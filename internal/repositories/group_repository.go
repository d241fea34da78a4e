package repositories

import (
	"errors"

	"github.com/noelps-git/tastemates/internal/models"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"gorm.io/gorm"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateGroup creates the group and its creator's admin membership in one
// transaction: both rows exist or neither does.
func (r *GroupRepository) CreateGroup(group *models.Group) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}

		member := &models.GroupMember{
			GroupID: group.ID,
			UserID:  group.CreatorID,
			Role:    models.GroupRoleAdmin,
		}
		return tx.Create(member).Error
	})

	if err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to create group")
	}

	return nil
}

// GetGroupByID retrieves a group by id.
func (r *GroupRepository) GetGroupByID(groupID uint) (*models.Group, error) {
	var group models.Group
	result := r.db.Preload("Creator").First(&group, groupID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.ErrCodeNotFound, "group not found")
	}
	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get group")
	}

	return &group, nil
}

// GetUserGroups retrieves all groups userID belongs to.
func (r *GroupRepository) GetUserGroups(userID uint) ([]models.Group, error) {
	var groups []models.Group
	result := r.db.Table("groups").
		Select("groups.*").
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&groups)

	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get user groups")
	}

	return groups, nil
}

// UpdateGroup applies the given field updates.
func (r *GroupRepository) UpdateGroup(groupID uint, updates map[string]interface{}) error {
	result := r.db.Model(&models.Group{}).
		Where("id = ?", groupID).
		Updates(updates)

	if result.Error != nil {
		return apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to update group")
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.ErrCodeNotFound, "group not found")
	}

	return nil
}

// DeleteGroup removes the group and everything it owns: memberships,
// messages, votes and their responses. The cascade is explicit so it holds
// on every backing store.
func (r *GroupRepository) DeleteGroup(groupID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		voteIDs := func() *gorm.DB {
			return tx.Model(&models.Vote{}).Select("id").Where("group_id = ?", groupID)
		}

		if err := tx.Where("vote_id IN (?)", voteIDs()).Delete(&models.VoteResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vote_id IN (?)", voteIDs()).Delete(&models.VoteOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Group{}, groupID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperr.New(apperr.ErrCodeNotFound, "group not found")
		}
		return nil
	})

	var appErr *apperr.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	if err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to delete group")
	}

	return nil
}

// AddMember adds a user to a group. Duplicate membership surfaces as a
// conflict via the unique (group_id, user_id) index.
func (r *GroupRepository) AddMember(groupID, userID uint) error {
	if _, err := r.GetGroupByID(groupID); err != nil {
		return err
	}

	member := &models.GroupMember{
		GroupID: groupID,
		UserID:  userID,
		Role:    models.GroupRoleMember,
	}

	if err := r.db.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.ErrCodeConflict, "user is already a member of this group")
		}
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to add member")
	}

	return nil
}

// RemoveMember removes a user from a group. The last admin cannot leave, so
// a group never ends up without one.
func (r *GroupRepository) RemoveMember(groupID, userID uint) error {
	role, err := r.GetMemberRole(groupID, userID)
	if err != nil {
		return err
	}

	if role == models.GroupRoleAdmin {
		var adminCount int64
		result := r.db.Model(&models.GroupMember{}).
			Where("group_id = ? AND role = ?", groupID, models.GroupRoleAdmin).
			Count(&adminCount)
		if result.Error != nil {
			return apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to count admins")
		}
		if adminCount <= 1 {
			return apperr.New(apperr.ErrCodeConflict, "a group must keep at least one admin")
		}
	}

	result := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&models.GroupMember{})

	if result.Error != nil {
		return apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to remove member")
	}
	if result.RowsAffected == 0 {
		return apperr.New(apperr.ErrCodeNotFound, "member not found")
	}

	return nil
}

// GetMemberRole returns the role userID holds in the group, or NotFound if
// they are not a member.
func (r *GroupRepository) GetMemberRole(groupID, userID uint) (string, error) {
	var member models.GroupMember
	result := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).First(&member)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", apperr.New(apperr.ErrCodeNotFound, "member not found")
	}
	if result.Error != nil {
		return "", apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get member role")
	}

	return member.Role, nil
}

// IsMember checks current membership; this is the authorization gate for
// every message and vote operation.
func (r *GroupRepository) IsMember(groupID, userID uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count)

	if result.Error != nil {
		return false, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to check membership")
	}

	return count > 0, nil
}

// IsAdmin checks whether userID holds the admin role in the group.
func (r *GroupRepository) IsAdmin(groupID, userID uint) (bool, error) {
	role, err := r.GetMemberRole(groupID, userID)
	if err != nil {
		var appErr *apperr.AppError
		if errors.As(err, &appErr) && appErr.Code == apperr.ErrCodeNotFound {
			return false, nil
		}
		return false, err
	}
	return role == models.GroupRoleAdmin, nil
}

// GetMembers retrieves the group's membership rows with their users.
func (r *GroupRepository) GetMembers(groupID uint) ([]models.GroupMember, error) {
	var members []models.GroupMember
	result := r.db.Where("group_id = ?", groupID).
		Preload("User").
		Order("joined_at ASC").
		Find(&members)

	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get members")
	}

	return members, nil
}
