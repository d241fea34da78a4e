package handlers

import (
	"net/http"
	"strconv"

	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/internal/pagination"
	"github.com/noelps-git/tastemates/internal/security"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"github.com/noelps-git/tastemates/pkg/logger"
)

const maxMessageLen = 4000

// PostMessage handles POST /groups/{id}/messages. Clients can only post
// text; vote and system messages are created by their own paths.
func (h *HandlerManager) PostMessage(w http.ResponseWriter, r *http.Request) {
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
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	content := security.SanitizeContent(req.Content, maxMessageLen)
	if content == "" {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "message content cannot be empty"))
		return
	}

	msg := &models.Message{
		GroupID:  groupID,
		SenderID: userID,
		Content:  content,
		Type:     models.MessageTypeText,
	}
	if err := h.MessageRepo.AppendMessage(msg); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

// FetchMessages handles GET /groups/{id}/messages?after&limit. Without a
// cursor it returns the latest page in chronological order; with one it
// returns only messages strictly newer than the cursor position, so
// periodic pollers never miss or duplicate entries. The response includes
// next_cursor to echo back on the next poll.
func (h *HandlerManager) FetchMessages(w http.ResponseWriter, r *http.Request) {
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

	limit := h.Config.MessagePageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, apperr.New(apperr.ErrCodeValidation, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	if limit > h.Config.MessageMaxPageSize {
		limit = h.Config.MessageMaxPageSize
	}

	after := r.URL.Query().Get("after")

	var messages []models.Message
	if after == "" {
		messages, err = h.MessageRepo.LatestMessages(groupID, limit)
	} else {
		var cursor pagination.Cursor
		cursor, err = pagination.Decode(after)
		if err != nil {
			respondError(w, err)
			return
		}
		messages, err = h.MessageRepo.MessagesAfter(groupID, cursor.Time(), cursor.MessageID, limit)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	next := after
	if len(messages) > 0 {
		last := messages[len(messages)-1]
		token, err := pagination.Encode(pagination.FromTime(last.CreatedAt, last.ID))
		if err != nil {
			logger.Error("failed to encode message cursor", "error", err)
		} else {
			next = token
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"messages":    messages,
		"next_cursor": next,
	})
}

func (h *HandlerManager) requireMember(groupID, userID uint) error {
	if _, err := h.GroupRepo.GetGroupByID(groupID); err != nil {
		return err
	}
	member, err := h.GroupRepo.IsMember(groupID, userID)
	if err != nil {
		return err
	}
	if !member {
		return apperr.New(apperr.ErrCodeForbidden, "you are not a member of this group")
	}
	return nil
}
