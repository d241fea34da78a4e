package repositories

import (
	"errors"
	"strings"
	"time"

	"github.com/noelps-git/tastemates/internal/models"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// VoteOptionTally is one option's live count, recomputed from response rows
// on every read. Counts are never cached because responses can be
// overwritten.
type VoteOptionTally struct {
	OptionID uint   `gorm:"column:option_id" json:"option_id"`
	Text     string `gorm:"column:text" json:"text"`
	Count    int64  `gorm:"column:count" json:"count"`
}

// CreateVote creates the vote-typed chat message, the vote row and its
// options in one transaction, so the vote always appears in the timeline
// exactly once.
func (r *VoteRepository) CreateVote(groupID, creatorID uint, question string, options []string, expiresAt *time.Time) (*models.Vote, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperr.New(apperr.ErrCodeValidation, "question must not be empty")
	}

	seen := make(map[string]bool, len(options))
	cleaned := make([]string, 0, len(options))
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt == "" || seen[opt] {
			continue
		}
		seen[opt] = true
		cleaned = append(cleaned, opt)
	}
	if len(cleaned) < 2 {
		return nil, apperr.New(apperr.ErrCodeValidation, "a vote needs at least two distinct options")
	}

	vote := &models.Vote{
		GroupID:   groupID,
		Question:  question,
		CreatedBy: creatorID,
		ExpiresAt: expiresAt,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		msg := &models.Message{
			GroupID:  groupID,
			SenderID: creatorID,
			Content:  question,
			Type:     models.MessageTypeVote,
		}
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		vote.MessageID = msg.ID
		if err := tx.Create(vote).Error; err != nil {
			return err
		}

		for i, text := range cleaned {
			option := &models.VoteOption{
				VoteID:   vote.ID,
				Position: i,
				Text:     text,
			}
			if err := tx.Create(option).Error; err != nil {
				return err
			}
			vote.Options = append(vote.Options, *option)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to create vote")
	}

	return vote, nil
}

// GetVoteByID retrieves a vote with its options.
func (r *VoteRepository) GetVoteByID(voteID uint) (*models.Vote, error) {
	var vote models.Vote
	result := r.db.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("vote_options.position ASC")
	}).First(&vote, voteID)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.New(apperr.ErrCodeNotFound, "vote not found")
	}
	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get vote")
	}

	return &vote, nil
}

// ListGroupVotes retrieves a group's votes, newest first.
func (r *VoteRepository) ListGroupVotes(groupID uint) ([]models.Vote, error) {
	var votes []models.Vote
	result := r.db.Where("group_id = ?", groupID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("vote_options.position ASC")
		}).
		Order("created_at DESC").
		Find(&votes)

	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to list votes")
	}

	return votes, nil
}

// SubmitResponse records or overwrites the user's single choice. The upsert
// on (vote_id, user_id) linearizes concurrent resubmissions: last write
// wins, never two rows.
func (r *VoteRepository) SubmitResponse(vote *models.Vote, userID, optionID uint) error {
	if vote.Expired(time.Now().UTC()) {
		return apperr.New(apperr.ErrCodeExpired, "this vote has expired")
	}

	valid := false
	for _, opt := range vote.Options {
		if opt.ID == optionID {
			valid = true
			break
		}
	}
	if !valid {
		return apperr.New(apperr.ErrCodeValidation, "option does not belong to this vote")
	}

	response := models.VoteResponse{
		VoteID:   vote.ID,
		UserID:   userID,
		OptionID: optionID,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "vote_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"option_id", "updated_at"}),
	}).Create(&response).Error

	if err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to submit response")
	}

	return nil
}

// GetResults tallies the vote by counting response rows per option at read
// time.
func (r *VoteRepository) GetResults(voteID uint) ([]VoteOptionTally, error) {
	var tallies []VoteOptionTally

	err := r.db.Table("vote_options").
		Select("vote_options.id AS option_id, vote_options.text AS text, COUNT(vote_responses.option_id) AS count").
		Joins("LEFT JOIN vote_responses ON vote_responses.option_id = vote_options.id AND vote_responses.vote_id = vote_options.vote_id").
		Where("vote_options.vote_id = ?", voteID).
		Group("vote_options.id, vote_options.text, vote_options.position").
		Order("vote_options.position ASC").
		Scan(&tallies).Error

	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrCodeInternalError, "failed to tally vote")
	}

	return tallies, nil
}

// GetUserResponse returns the user's current choice, or nil if they have
// not voted.
func (r *VoteRepository) GetUserResponse(voteID, userID uint) (*models.VoteResponse, error) {
	var response models.VoteResponse
	result := r.db.Where("vote_id = ? AND user_id = ?", voteID, userID).First(&response)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, apperr.Wrap(result.Error, apperr.ErrCodeInternalError, "failed to get response")
	}

	return &response, nil
}
