package handlers

import (
	"net/http"

	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/internal/security"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
)

const maxBucketNoteLen = 1000

// AddBucketListItem handles POST /bucket-list. The (user, restaurant)
// unique index makes the add idempotent: a duplicate returns Conflict and
// clients treat that as "already there".
func (h *HandlerManager) AddBucketListItem(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		RestaurantID      uint   `json:"restaurant_id"`
		Note              string `json:"note"`
		AddedFromFriendID *uint  `json:"added_from_friend_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.RestaurantID == 0 {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "restaurant_id is required"))
		return
	}

	item := &models.BucketListItem{
		UserID:            userID,
		RestaurantID:      req.RestaurantID,
		Note:              security.SanitizeContent(req.Note, maxBucketNoteLen),
		AddedFromFriendID: req.AddedFromFriendID,
	}
	if err := h.BucketListRepo.AddItem(item); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// ListBucketList handles GET /bucket-list?visited=true|false.
func (h *HandlerManager) ListBucketList(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var visited *bool
	switch r.URL.Query().Get("visited") {
	case "":
	case "true":
		v := true
		visited = &v
	case "false":
		v := false
		visited = &v
	default:
		respondError(w, apperr.New(apperr.ErrCodeValidation, "visited must be true or false"))
		return
	}

	items, err := h.BucketListRepo.ListItems(userID, visited)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// UpdateBucketListItem handles PUT /bucket-list/{id}. Supports toggling
// visited state and editing the note, owner-only.
func (h *HandlerManager) UpdateBucketListItem(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		ToggleVisited bool    `json:"toggle_visited"`
		Note          *string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	var item *models.BucketListItem
	switch {
	case req.ToggleVisited:
		item, err = h.BucketListRepo.ToggleVisited(itemID, userID)
	case req.Note != nil:
		item, err = h.BucketListRepo.UpdateNote(itemID, userID, security.SanitizeContent(*req.Note, maxBucketNoteLen))
	default:
		respondError(w, apperr.New(apperr.ErrCodeValidation, "nothing to update"))
		return
	}
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// RemoveBucketListItem handles DELETE /bucket-list/{id}, owner-only.
func (h *HandlerManager) RemoveBucketListItem(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	itemID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.BucketListRepo.RemoveItem(itemID, userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "item removed"})
}
