package handlers

import (
	"net/http"
	"time"

	"github.com/noelps-git/tastemates/internal/security"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
)

const maxVoteQuestionLen = 500

// CreateVote handles POST /groups/{id}/votes. The vote rides on a
// vote-typed chat message created in the same transaction, so it shows up
// in the group timeline like any other message.
func (h *HandlerManager) CreateVote(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.requireMember(groupID, userID); err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Question       string   `json:"question"`
		Options        []string `json:"options"`
		ExpiresInHours int      `json:"expires_in_hours"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	question := security.SanitizeContent(req.Question, maxVoteQuestionLen)
	if question == "" {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "question is required"))
		return
	}
	if len(req.Options) > h.Config.VoteMaxOptions {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "too many options"))
		return
	}
	if req.ExpiresInHours < 0 {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "expires_in_hours cannot be negative"))
		return
	}

	options := make([]string, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, security.SanitizeContent(opt, 255))
	}

	var expiresAt *time.Time
	if req.ExpiresInHours > 0 {
		t := time.Now().UTC().Add(time.Duration(req.ExpiresInHours) * time.Hour)
		expiresAt = &t
	}

	vote, err := h.VoteRepo.CreateVote(groupID, userID, question, options, expiresAt)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vote)
}

// ListVotes handles GET /groups/{id}/votes.
func (h *HandlerManager) ListVotes(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	groupID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.requireMember(groupID, userID); err != nil {
		respondError(w, err)
		return
	}

	votes, err := h.VoteRepo.ListGroupVotes(groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"votes": votes})
}

// SubmitVoteResponse handles POST /votes/{id}/respond. Resubmitting
// overwrites the caller's previous choice.
func (h *HandlerManager) SubmitVoteResponse(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	voteID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		OptionID uint `json:"option_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.OptionID == 0 {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "option_id is required"))
		return
	}

	vote, err := h.VoteRepo.GetVoteByID(voteID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.requireMember(vote.GroupID, userID); err != nil {
		respondError(w, err)
		return
	}

	if err := h.VoteRepo.SubmitResponse(vote, userID, req.OptionID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "vote recorded"})
}

// GetVoteResults handles GET /votes/{id}/respond. Tallies are recomputed
// from response rows on every read.
func (h *HandlerManager) GetVoteResults(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	voteID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	vote, err := h.VoteRepo.GetVoteByID(voteID)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.requireMember(vote.GroupID, userID); err != nil {
		respondError(w, err)
		return
	}

	tallies, err := h.VoteRepo.GetResults(voteID)
	if err != nil {
		respondError(w, err)
		return
	}
	var total int64
	for _, t := range tallies {
		total += t.Count
	}

	var yourChoice *uint
	if resp, err := h.VoteRepo.GetUserResponse(voteID, userID); err == nil && resp != nil {
		yourChoice = &resp.OptionID
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"vote":        vote,
		"results":     tallies,
		"total_votes": total,
		"your_choice": yourChoice,
		"expired":     vote.Expired(time.Now().UTC()),
	})
}
