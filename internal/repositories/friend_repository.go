package repositories

import (
	"errors"

	"github.com/noelps-git/tastemates/internal/models"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"gorm.io/gorm"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

func pairColumns(a, b uint) (uint, uint) {
	if a < b {
		return a, b
	}
	return b, a
}

// RequestFriend creates a pending friendship row for the pair. A rejected
// row clears the slot: it is replaced by the fresh request inside the same
// transaction. Concurrent requests from both directions are serialized by
// the unique pair index; the loser surfaces a conflict.
func (r *FriendRepository) RequestFriend(requesterID, recipientID uint) (*models.Friendship, error) {
	if requesterID == recipientID {
		return nil, apperr.New(apperr.ErrCodeConflict, "you cannot send a friend request to yourself")
	}

	friendship := &models.Friendship{
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.FriendshipStatusPending,
	}

	lo, hi := pairColumns(requesterID, recipientID)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Friendship
		result := tx.Where("user_lo_id = ? AND user_hi_id = ?", lo, hi).First(&existing)

		if result.Error == nil {
			switch existing.Status {
			case models.FriendshipStatusAccepted:
				return apperr.New(apperr.ErrCodeConflict, "already friends")
			case models.FriendshipStatusPending:
				return apperr.New(apperr.ErrCodeConflict, "friend request already sent")
			case models.FriendshipStatusRejected:
				if err := tx.Delete(&existing).Error; err != nil {
					return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to clear rejected request")
				}
			}
		} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to check existing friendship")
		}

		if err := tx.Create(friendship).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.New(apperr.ErrCodeConflict, "a friend request for this pair already exists")
			}
			return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to create friend request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return friendship, nil
}

// RespondToFriend accepts or rejects a pending request. Only the recipient
// may respond, and only while the request is pending.
func (r *FriendRepository) RespondToFriend(friendshipID, responderID uint, accept bool) (*models.Friendship, error) {
	var friendship models.Friendship
	result := r.db.First(&friendship, friendshipID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.ErrCodeNotFound, "friend request not found")
	}
	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get friend request")
	}

	if friendship.RecipientID != responderID {
		return nil, apperr.New(apperr.ErrCodeForbidden, "only the recipient can respond to a friend request")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, apperr.New(apperr.ErrCodeConflict, "this friend request has already been responded to")
	}

	status := models.FriendshipStatusRejected
	if accept {
		status = models.FriendshipStatusAccepted
	}

	if err := r.db.Model(&friendship).Update("status", status).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to update friend request")
	}

	friendship.Status = status
	return &friendship, nil
}

// RemoveFriendship deletes the row regardless of status: it covers both
// unfriending and cancelling a sent request.
func (r *FriendRepository) RemoveFriendship(friendshipID, actorID uint) error {
	var friendship models.Friendship
	result := r.db.First(&friendship, friendshipID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.ErrCodeNotFound, "friendship not found")
	}
	if result.Error != nil {
		return apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get friendship")
	}

	if friendship.RequesterID != actorID && friendship.RecipientID != actorID {
		return apperr.New(apperr.ErrCodeForbidden, "you are not part of this friendship")
	}

	if err := r.db.Delete(&friendship).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to remove friendship")
	}

	return nil
}

// GetFriends retrieves the users in an accepted friendship with userID.
func (r *FriendRepository) GetFriends(userID uint) ([]models.User, error) {
	var friends []models.User

	err := r.db.Table("users").
		Select("users.*").
		Joins("JOIN friendships ON (friendships.requester_id = users.id OR friendships.recipient_id = users.id)").
		Where("(friendships.requester_id = ? OR friendships.recipient_id = ?) AND friendships.status = ? AND users.id != ?",
			userID, userID, models.FriendshipStatusAccepted, userID).
		Find(&friends).Error

	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to get friends")
	}

	return friends, nil
}

// GetFriendIDs returns just the ids of accepted friends; the fan-out engine
// uses this as the recipient set for friend_review notifications.
func (r *FriendRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var friendships []models.Friendship

	err := r.db.Where("(requester_id = ? OR recipient_id = ?) AND status = ?",
		userID, userID, models.FriendshipStatusAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to get friend ids")
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.RequesterID == userID {
			ids = append(ids, f.RecipientID)
		} else {
			ids = append(ids, f.RequesterID)
		}
	}

	return ids, nil
}

// GetReceivedRequests retrieves pending requests addressed to userID.
func (r *FriendRepository) GetReceivedRequests(userID uint) ([]models.Friendship, error) {
	var requests []models.Friendship

	err := r.db.Where("recipient_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Requester").
		Find(&requests).Error

	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to get received requests")
	}

	return requests, nil
}

// GetSentRequests retrieves pending requests created by userID.
func (r *FriendRepository) GetSentRequests(userID uint) ([]models.Friendship, error) {
	var requests []models.Friendship

	err := r.db.Where("requester_id = ? AND status = ?", userID, models.FriendshipStatusPending).
		Preload("Recipient").
		Find(&requests).Error

	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to get sent requests")
	}

	return requests, nil
}

// AreFriends checks for an accepted friendship between two users.
func (r *FriendRepository) AreFriends(user1ID, user2ID uint) (bool, error) {
	lo, hi := pairColumns(user1ID, user2ID)

	var count int64
	result := r.db.Model(&models.Friendship{}).
		Where("user_lo_id = ? AND user_hi_id = ? AND status = ?", lo, hi, models.FriendshipStatusAccepted).
		Count(&count)

	if result.Error != nil {
		return false, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to check friendship")
	}

	return count > 0, nil
}
