package handlers

import (
	"net/http"

	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/internal/services"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
)

// RequestFriend handles POST /friends.
func (h *HandlerManager) RequestFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		RecipientID uint `json:"recipient_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.RecipientID == 0 {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "recipient_id is required"))
		return
	}

	exists, err := h.UserRepo.UserExists(req.RecipientID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !exists {
		respondError(w, apperr.New(apperr.ErrCodeNotFound, "recipient not found"))
		return
	}

	friendship, err := h.FriendRepo.RequestFriend(userID, req.RecipientID)
	if err != nil {
		respondError(w, err)
		return
	}

	actor, err := h.UserRepo.GetUserByID(userID)
	if err == nil {
		h.Fanout.Publish(services.SocialEvent{
			Type:         services.EventFriendRequest,
			ActorID:      userID,
			ActorName:    actor.Name(),
			TargetUserID: req.RecipientID,
			FriendshipID: friendship.ID,
		})
	}

	respondJSON(w, http.StatusCreated, friendship)
}

// ListFriends handles GET /friends. With no query parameters it returns the
// accepted friend list; type=sent or type=received narrows to pending
// requests in that direction.
func (h *HandlerManager) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	switch r.URL.Query().Get("type") {
	case "", "accepted":
		friends, err := h.FriendRepo.GetFriends(userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"friends": friends})
	case "sent":
		requests, err := h.FriendRepo.GetSentRequests(userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
	case "received":
		requests, err := h.FriendRepo.GetReceivedRequests(userID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
	default:
		respondError(w, apperr.New(apperr.ErrCodeValidation, "type must be accepted, sent or received"))
	}
}

// RespondToFriend handles PUT /friends/{id} with {"status": "accepted"|"rejected"}.
func (h *HandlerManager) RespondToFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	friendshipID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Status != models.FriendshipStatusAccepted && req.Status != models.FriendshipStatusRejected {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "status must be accepted or rejected"))
		return
	}

	accept := req.Status == models.FriendshipStatusAccepted
	friendship, err := h.FriendRepo.RespondToFriend(friendshipID, userID, accept)
	if err != nil {
		respondError(w, err)
		return
	}

	if accept {
		actor, err := h.UserRepo.GetUserByID(userID)
		if err == nil {
			h.Fanout.Publish(services.SocialEvent{
				Type:         services.EventFriendAccepted,
				ActorID:      userID,
				ActorName:    actor.Name(),
				TargetUserID: friendship.RequesterID,
				FriendshipID: friendship.ID,
			})
		}
	}

	respondJSON(w, http.StatusOK, friendship)
}

// RemoveFriendship handles DELETE /friends/{id}. Covers both unfriend and
// cancelling a request the caller sent.
func (h *HandlerManager) RemoveFriendship(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	friendshipID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.FriendRepo.RemoveFriendship(friendshipID, userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "friendship removed"})
}
