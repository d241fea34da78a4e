package repositories_test

import (
	"testing"

	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/internal/repositories"
	apperr "github.com/noelps-git/tastemates/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroupMakesCreatorAdmin(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGroupRepository(db)
	alice := seedUser(t, db, "alice")

	group := &models.Group{Name: "Weekend Club", CreatorID: alice.ID}
	require.NoError(t, repo.CreateGroup(group))
	require.NotZero(t, group.ID)

	role, err := repo.GetMemberRole(group.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleAdmin, role)

	admin, err := repo.IsAdmin(group.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestAddMemberDuplicateConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGroupRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	group := &models.Group{Name: "Weekend Club", CreatorID: alice.ID}
	require.NoError(t, repo.CreateGroup(group))

	require.NoError(t, repo.AddMember(group.ID, bob.ID))

	err := repo.AddMember(group.ID, bob.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeConflict, apperr.As(err).Code)

	members, err := repo.GetMembers(group.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestRemoveMemberLastAdminProtected(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGroupRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	group := &models.Group{Name: "Weekend Club", CreatorID: alice.ID}
	require.NoError(t, repo.CreateGroup(group))
	require.NoError(t, repo.AddMember(group.ID, bob.ID))

	// the only admin cannot leave
	err := repo.RemoveMember(group.ID, alice.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.ErrCodeConflict, apperr.As(err).Code)

	// a plain member can
	require.NoError(t, repo.RemoveMember(group.ID, bob.ID))

	member, err := repo.IsMember(group.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, member)
}

func TestDeleteGroupCascades(t *testing.T) {
	db := setupTestDB(t)
	groupRepo := repositories.NewGroupRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	voteRepo := repositories.NewVoteRepository(db)
	alice := seedUser(t, db, "alice")

	group := &models.Group{Name: "Weekend Club", CreatorID: alice.ID}
	require.NoError(t, groupRepo.CreateGroup(group))

	require.NoError(t, messageRepo.AppendMessage(&models.Message{
		GroupID: group.ID, SenderID: alice.ID, Content: "hello", Type: models.MessageTypeText,
	}))
	vote, err := voteRepo.CreateVote(group.ID, alice.ID, "Where next?", []string{"Biryani", "Dosa"}, nil)
	require.NoError(t, err)
	require.NoError(t, voteRepo.SubmitResponse(vote, alice.ID, vote.Options[0].ID))

	require.NoError(t, groupRepo.DeleteGroup(group.ID))

	for _, probe := range []struct {
		name  string
		model interface{}
	}{
		{"groups", &models.Group{}},
		{"group_members", &models.GroupMember{}},
		{"messages", &models.Message{}},
		{"votes", &models.Vote{}},
		{"vote_options", &models.VoteOption{}},
		{"vote_responses", &models.VoteResponse{}},
	} {
		var count int64
		require.NoError(t, db.Model(probe.model).Count(&count).Error)
		assert.Zero(t, count, "expected no rows left in %s", probe.name)
	}
}

func TestGetUserGroups(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewGroupRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	g1 := &models.Group{Name: "Weekend Club", CreatorID: alice.ID}
	require.NoError(t, repo.CreateGroup(g1))
	g2 := &models.Group{Name: "Office Lunch", CreatorID: bob.ID}
	require.NoError(t, repo.CreateGroup(g2))
	require.NoError(t, repo.AddMember(g2.ID, alice.ID))

	groups, err := repo.GetUserGroups(alice.ID)
	require.NoError(t, err)
	names := []string{}
	for _, g := range groups {
		names = append(names, g.Name)
	}
	assert.ElementsMatch(t, []string{"Weekend Club", "Office Lunch"}, names)

	groups, err = repo.GetUserGroups(bob.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Office Lunch", groups[0].Name)
}
