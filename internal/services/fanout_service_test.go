package services_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/noelps-git/tastemates/internal/database"
	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/internal/repositories"
	"github.com/noelps-git/tastemates/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupFanout(t *testing.T) (*gorm.DB, *services.FanoutService, *repositories.NotificationRepository, *repositories.FriendRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	notificationRepo := repositories.NewNotificationRepository(db)
	friendRepo := repositories.NewFriendRepository(db)
	svc := services.NewFanoutService(notificationRepo, friendRepo, nil, 2, 16)
	return db, svc, notificationRepo, friendRepo
}

func seedFanoutUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func befriend(t *testing.T, repo *repositories.FriendRepository, a, b uint) {
	t.Helper()
	fs, err := repo.RequestFriend(a, b)
	require.NoError(t, err)
	_, err = repo.RespondToFriend(fs.ID, b, true)
	require.NoError(t, err)
}

func TestFriendRequestNotification(t *testing.T) {
	db, svc, _, _ := setupFanout(t)
	alice := seedFanoutUser(t, db, "alice")
	bob := seedFanoutUser(t, db, "bob")

	svc.Publish(services.SocialEvent{
		Type:         services.EventFriendRequest,
		ActorID:      alice.ID,
		ActorName:    "alice",
		TargetUserID: bob.ID,
		FriendshipID: 42,
	})
	svc.Stop()

	var got []models.Notification
	require.NoError(t, db.Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, bob.ID, got[0].UserID)
	assert.Equal(t, models.NotificationTypeFriendRequest, got[0].Type)
	assert.Equal(t, "alice sent you a friend request", got[0].Message)
	assert.False(t, got[0].IsRead)

	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got[0].Metadata), &meta))
	assert.EqualValues(t, 42, meta["friendship_id"])
}

func TestFriendAcceptedGoesToRequesterOnly(t *testing.T) {
	db, svc, _, _ := setupFanout(t)
	alice := seedFanoutUser(t, db, "alice")
	bob := seedFanoutUser(t, db, "bob")

	svc.Publish(services.SocialEvent{
		Type:         services.EventFriendAccepted,
		ActorID:      bob.ID,
		ActorName:    "bob",
		TargetUserID: alice.ID,
		FriendshipID: 7,
	})
	svc.Stop()

	var got []models.Notification
	require.NoError(t, db.Find(&got).Error)
	require.Len(t, got, 1)
	assert.Equal(t, alice.ID, got[0].UserID)
	assert.Equal(t, models.NotificationTypeFriendAccepted, got[0].Type)
}

func TestCommentOnOwnNoteIsSkipped(t *testing.T) {
	db, svc, _, _ := setupFanout(t)
	alice := seedFanoutUser(t, db, "alice")

	svc.Publish(services.SocialEvent{
		Type:         services.EventCommentPosted,
		ActorID:      alice.ID,
		ActorName:    "alice",
		TargetUserID: alice.ID,
		NoteID:       5,
	})
	svc.Stop()

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReviewFansOutToAcceptedFriends(t *testing.T) {
	db, svc, _, friendRepo := setupFanout(t)
	alice := seedFanoutUser(t, db, "alice")
	bob := seedFanoutUser(t, db, "bob")
	carol := seedFanoutUser(t, db, "carol")
	dave := seedFanoutUser(t, db, "dave")

	befriend(t, friendRepo, alice.ID, bob.ID)
	befriend(t, friendRepo, carol.ID, alice.ID)
	// dave's request stays pending, he must not be notified
	_, err := friendRepo.RequestFriend(dave.ID, alice.ID)
	require.NoError(t, err)

	svc.Publish(services.SocialEvent{
		Type:           services.EventReviewPublished,
		ActorID:        alice.ID,
		ActorName:      "alice",
		NoteID:         11,
		Rating:         5,
		RestaurantID:   3,
		RestaurantName: "Rameshwaram Cafe",
	})
	svc.Stop()

	var got []models.Notification
	require.NoError(t, db.Find(&got).Error)
	require.Len(t, got, 2)

	recipients := []uint{got[0].UserID, got[1].UserID}
	assert.ElementsMatch(t, []uint{bob.ID, carol.ID}, recipients)

	for _, n := range got {
		assert.Equal(t, models.NotificationTypeFriendReview, n.Type)
		assert.Equal(t, "alice reviewed Rameshwaram Cafe", n.Message)

		// metadata is self-contained for the bucket-list flow
		var meta map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(n.Metadata), &meta))
		assert.EqualValues(t, 3, meta["restaurant_id"])
		assert.Equal(t, "Rameshwaram Cafe", meta["restaurant_name"])
		assert.EqualValues(t, 11, meta["note_id"])
		assert.EqualValues(t, 5, meta["rating"])
	}
}

func TestStopIsIdempotent(t *testing.T) {
	_, svc, _, _ := setupFanout(t)
	svc.Stop()
	svc.Stop()
}
