package repositories_test

import (
	"testing"

	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/internal/repositories"
	apperr "github.com/noelps-git/tastemates/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemIdempotentPerRestaurant(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBucketListRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	place := seedRestaurant(t, db, "Rameshwaram Cafe")

	item := &models.BucketListItem{UserID: alice.ID, RestaurantID: place.ID, AddedFromFriendID: &bob.ID}
	require.NoError(t, repo.AddItem(item))

	// second add for the same pair is a conflict, not a second row
	dup := &models.BucketListItem{UserID: alice.ID, RestaurantID: place.ID}
	err := repo.AddItem(dup)
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeConflict, apperr.As(err).Code)

	var count int64
	db.Model(&models.BucketListItem{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// a different user may track the same restaurant
	other := &models.BucketListItem{UserID: bob.ID, RestaurantID: place.ID}
	require.NoError(t, repo.AddItem(other))
}

func TestAddItemUnknownRestaurant(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBucketListRepository(db)
	alice := seedUser(t, db, "alice")

	err := repo.AddItem(&models.BucketListItem{UserID: alice.ID, RestaurantID: 9999})
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeNotFound, apperr.As(err).Code)
}

func TestToggleVisitedOwnerOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBucketListRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	place := seedRestaurant(t, db, "Rameshwaram Cafe")

	item := &models.BucketListItem{UserID: alice.ID, RestaurantID: place.ID}
	require.NoError(t, repo.AddItem(item))

	_, err := repo.ToggleVisited(item.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeForbidden, apperr.As(err).Code)

	updated, err := repo.ToggleVisited(item.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsVisited)

	updated, err = repo.ToggleVisited(item.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsVisited)
}

func TestListItemsVisitedFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBucketListRepository(db)
	alice := seedUser(t, db, "alice")
	r1 := seedRestaurant(t, db, "Rameshwaram Cafe")
	r2 := seedRestaurant(t, db, "CTR")

	i1 := &models.BucketListItem{UserID: alice.ID, RestaurantID: r1.ID}
	require.NoError(t, repo.AddItem(i1))
	i2 := &models.BucketListItem{UserID: alice.ID, RestaurantID: r2.ID}
	require.NoError(t, repo.AddItem(i2))
	_, err := repo.ToggleVisited(i1.ID, alice.ID)
	require.NoError(t, err)

	all, err := repo.ListItems(alice.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visited := true
	got, err := repo.ListItems(alice.ID, &visited)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r1.ID, got[0].RestaurantID)

	visited = false
	got, err = repo.ListItems(alice.ID, &visited)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r2.ID, got[0].RestaurantID)
}

func TestUpdateNoteAndRemove(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewBucketListRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	place := seedRestaurant(t, db, "Rameshwaram Cafe")

	item := &models.BucketListItem{UserID: alice.ID, RestaurantID: place.ID}
	require.NoError(t, repo.AddItem(item))

	updated, err := repo.UpdateNote(item.ID, alice.ID, "try the ghee roast")
	require.NoError(t, err)
	assert.Equal(t, "try the ghee roast", updated.Note)

	err = repo.RemoveItem(item.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeForbidden, apperr.As(err).Code)

	require.NoError(t, repo.RemoveItem(item.ID, alice.ID))

	// removal reopens the slot
	require.NoError(t, repo.AddItem(&models.BucketListItem{UserID: alice.ID, RestaurantID: place.ID}))
}
