package repositories

import (
	"errors"

	"github.com/noelps-git/tastemates/internal/models"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"gorm.io/gorm"
)

type BucketListRepository struct {
	db *gorm.DB
}

func NewBucketListRepository(db *gorm.DB) *BucketListRepository {
	return &BucketListRepository{db: db}
}

// AddItem creates a to-visit record. The (user, restaurant) unique index
// makes the operation idempotent: a second attempt surfaces a conflict the
// caller can treat as "already there".
func (r *BucketListRepository) AddItem(item *models.BucketListItem) error {
	var restaurant models.Restaurant
	result := r.db.First(&restaurant, item.RestaurantID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return apperr.New(apperr.ErrCodeNotFound, "restaurant not found")
	}
	if result.Error != nil {
		return apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to check restaurant")
	}

	if err := r.db.Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.New(apperr.ErrCodeConflict, "already in your bucket list")
		}
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to add bucket list item")
	}

	return nil
}

// ListItems retrieves the owner's bucket list, optionally filtered by
// visited state.
func (r *BucketListRepository) ListItems(userID uint, visited *bool) ([]models.BucketListItem, error) {
	query := r.db.Where("user_id = ?", userID)
	if visited != nil {
		query = query.Where("is_visited = ?", *visited)
	}

	var items []models.BucketListItem
	result := query.Preload("Restaurant").Order("created_at DESC").Find(&items)

	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to list bucket list items")
	}

	return items, nil
}

func (r *BucketListRepository) getOwned(itemID, ownerID uint) (*models.BucketListItem, error) {
	var item models.BucketListItem
	result := r.db.First(&item, itemID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.ErrCodeNotFound, "bucket list item not found")
	}
	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get bucket list item")
	}

	if item.UserID != ownerID {
		return nil, apperr.New(apperr.ErrCodeForbidden, "this bucket list item belongs to another user")
	}

	return &item, nil
}

// ToggleVisited flips the visited flag on one of the owner's items.
func (r *BucketListRepository) ToggleVisited(itemID, ownerID uint) (*models.BucketListItem, error) {
	item, err := r.getOwned(itemID, ownerID)
	if err != nil {
		return nil, err
	}

	item.IsVisited = !item.IsVisited
	if err := r.db.Model(item).Update("is_visited", item.IsVisited).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to update bucket list item")
	}

	return item, nil
}

// UpdateNote replaces the note on one of the owner's items.
func (r *BucketListRepository) UpdateNote(itemID, ownerID uint, note string) (*models.BucketListItem, error) {
	item, err := r.getOwned(itemID, ownerID)
	if err != nil {
		return nil, err
	}

	item.Note = note
	if err := r.db.Model(item).Update("note", note).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to update bucket list item")
	}

	return item, nil
}

// RemoveItem deletes one of the owner's items.
func (r *BucketListRepository) RemoveItem(itemID, ownerID uint) error {
	item, err := r.getOwned(itemID, ownerID)
	if err != nil {
		return err
	}

	if err := r.db.Delete(item).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to remove bucket list item")
	}

	return nil
}
