package repositories

import (
	"time"

	"github.com/noelps-git/tastemates/internal/models"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// AppendMessage writes a new message. CreatedAt is server-assigned; the
// autoincrement id breaks ordering ties inside a millisecond.
func (r *MessageRepository) AppendMessage(msg *models.Message) error {
	if err := r.db.Create(msg).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to append message")
	}
	return nil
}

// LatestMessages returns the most recent limit messages in chronological
// order, for the initial page load before a client has a cursor.
func (r *MessageRepository) LatestMessages(groupID uint, limit int) ([]models.Message, error) {
	var messages []models.Message

	result := r.db.Where("group_id = ?", groupID).
		Preload("Sender").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages)

	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get messages")
	}

	// newest-first query, flipped to chronological for the client
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// MessagesAfter returns messages strictly newer than the (after, afterID)
// cursor, in chronological order. Strictly-greater comparison on the
// composite key means pollers never see a message twice and never skip one,
// even when two messages share a millisecond.
func (r *MessageRepository) MessagesAfter(groupID uint, after time.Time, afterID uint, limit int) ([]models.Message, error) {
	var messages []models.Message

	result := r.db.Where("group_id = ?", groupID).
		Where("(created_at > ? OR (created_at = ? AND id > ?))", after, after, afterID).
		Preload("Sender").
		Order("created_at ASC, id ASC").
		Limit(limit).
		Find(&messages)

	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get messages")
	}

	return messages, nil
}
