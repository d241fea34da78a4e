package repositories_test

import (
	"testing"
	"time"

	"github.com/noelps-git/tastemates/internal/database"
	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/internal/pagination"
	"github.com/noelps-git/tastemates/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLatestMessagesChronological(t *testing.T) {
	db := setupTestDB(t)
	groupRepo := repositories.NewGroupRepository(db)
	repo := repositories.NewMessageRepository(db)
	alice := seedUser(t, db, "alice")

	group := &models.Group{Name: "Weekend Club", CreatorID: alice.ID}
	require.NoError(t, groupRepo.CreateGroup(group))

	base := time.Now().UTC().Truncate(time.Millisecond).Add(-time.Minute)
	for i := 0; i < 5; i++ {
		msg := &models.Message{
			GroupID:   group.ID,
			SenderID:  alice.ID,
			Content:   string(rune('a' + i)),
			Type:      models.MessageTypeText,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, db.Create(msg).Error)
	}

	msgs, err := repo.LatestMessages(group.ID, 3)
	require.NoError(t, err)
	require.Len(t, msgs, 3)

	// newest three, oldest first
	assert.Equal(t, "c", msgs[0].Content)
	assert.Equal(t, "d", msgs[1].Content)
	assert.Equal(t, "e", msgs[2].Content)
}

func TestMessagesAfterStrictlyNewer(t *testing.T) {
	db := setupTestDB(t)
	groupRepo := repositories.NewGroupRepository(db)
	repo := repositories.NewMessageRepository(db)
	alice := seedUser(t, db, "alice")

	group := &models.Group{Name: "Weekend Club", CreatorID: alice.ID}
	require.NoError(t, groupRepo.CreateGroup(group))

	ts := time.Now().UTC().Truncate(time.Millisecond)

	// three messages sharing one timestamp, one newer
	var ids []uint
	for i := 0; i < 3; i++ {
		msg := &models.Message{
			GroupID: group.ID, SenderID: alice.ID,
			Content: string(rune('a' + i)), Type: models.MessageTypeText,
			CreatedAt: ts,
		}
		require.NoError(t, db.Create(msg).Error)
		ids = append(ids, msg.ID)
	}
	newer := &models.Message{
		GroupID: group.ID, SenderID: alice.ID,
		Content: "d", Type: models.MessageTypeText,
		CreatedAt: ts.Add(time.Second),
	}
	require.NoError(t, db.Create(newer).Error)

	// cursor at the middle same-timestamp message: the remaining
	// same-timestamp row and the newer row come back, nothing else
	msgs, err := repo.MessagesAfter(group.ID, ts, ids[1], 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "c", msgs[0].Content)
	assert.Equal(t, "d", msgs[1].Content)

	// cursor at the last message: nothing new
	msgs, err = repo.MessagesAfter(group.ID, newer.CreatedAt, newer.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMessagesAfterScopedToGroup(t *testing.T) {
	db := setupTestDB(t)
	groupRepo := repositories.NewGroupRepository(db)
	repo := repositories.NewMessageRepository(db)
	alice := seedUser(t, db, "alice")

	g1 := &models.Group{Name: "Weekend Club", CreatorID: alice.ID}
	require.NoError(t, groupRepo.CreateGroup(g1))
	g2 := &models.Group{Name: "Office Lunch", CreatorID: alice.ID}
	require.NoError(t, groupRepo.CreateGroup(g2))

	require.NoError(t, repo.AppendMessage(&models.Message{
		GroupID: g1.ID, SenderID: alice.ID, Content: "ours", Type: models.MessageTypeText,
	}))
	require.NoError(t, repo.AppendMessage(&models.Message{
		GroupID: g2.ID, SenderID: alice.ID, Content: "theirs", Type: models.MessageTypeText,
	}))

	msgs, err := repo.MessagesAfter(g1.ID, time.Time{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "ours", msgs[0].Content)
}

func TestMessagesAfterSubMillisecondTimestamps(t *testing.T) {
	// no NowFunc truncation here: created_at keeps its nanosecond component,
	// the way a production clock hands it to the driver
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	groupRepo := repositories.NewGroupRepository(db)
	repo := repositories.NewMessageRepository(db)
	alice := seedUser(t, db, "alice")

	group := &models.Group{Name: "Weekend Club", CreatorID: alice.ID}
	require.NoError(t, groupRepo.CreateGroup(group))

	msg := &models.Message{
		GroupID: group.ID, SenderID: alice.ID, Content: "hi", Type: models.MessageTypeText,
	}
	require.NoError(t, repo.AppendMessage(msg))

	page, err := repo.LatestMessages(group.ID, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)

	// round-trip the cursor exactly as the fetch endpoint builds it
	last := page[len(page)-1]
	token, err := pagination.Encode(pagination.FromTime(last.CreatedAt, last.ID))
	require.NoError(t, err)
	cursor, err := pagination.Decode(token)
	require.NoError(t, err)

	// the message the cursor was taken from must not come back
	msgs, err := repo.MessagesAfter(group.ID, cursor.Time(), cursor.MessageID, 10)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
