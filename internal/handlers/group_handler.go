package handlers

import (
	"fmt"
	"net/http"

	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/internal/security"
	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"github.com/noelps-git/tastemates/pkg/logger"
)

const maxGroupNameLen = 120

// CreateGroup handles POST /groups. The creator becomes the group's first
// admin in the same transaction.
func (h *HandlerManager) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPrivate   bool   `json:"is_private"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	name := security.SanitizeContent(req.Name, maxGroupNameLen)
	if name == "" {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "group name is required"))
		return
	}

	group := &models.Group{
		Name:        name,
		Description: security.SanitizeContent(req.Description, 1000),
		IsPrivate:   req.IsPrivate,
		CreatorID:   userID,
	}
	if err := h.GroupRepo.CreateGroup(group); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, group)
}

// ListGroups handles GET /groups, returning the caller's groups.
func (h *HandlerManager) ListGroups(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	groups, err := h.GroupRepo.GetUserGroups(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"groups": groups})
}

// GetGroup handles GET /groups/{id}. Private groups are visible to members
// only; public groups to anyone authenticated.
func (h *HandlerManager) GetGroup(w http.ResponseWriter, r *http.Request) {
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

	group, err := h.GroupRepo.GetGroupByID(groupID)
	if err != nil {
		respondError(w, err)
		return
	}

	member, err := h.GroupRepo.IsMember(groupID, userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if group.IsPrivate && !member {
		respondError(w, apperr.New(apperr.ErrCodeForbidden, "this group is private"))
		return
	}

	members, err := h.GroupRepo.GetMembers(groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"group":   group,
		"members": members,
	})
}

// UpdateGroup handles PUT /groups/{id}, admin-only.
func (h *HandlerManager) UpdateGroup(w http.ResponseWriter, r *http.Request) {
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

	if err := h.requireAdmin(groupID, userID); err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		IsPrivate   *bool   `json:"is_private"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := security.SanitizeContent(*req.Name, maxGroupNameLen)
		if name == "" {
			respondError(w, apperr.New(apperr.ErrCodeValidation, "group name cannot be empty"))
			return
		}
		updates["name"] = name
	}
	if req.Description != nil {
		updates["description"] = security.SanitizeContent(*req.Description, 1000)
	}
	if req.IsPrivate != nil {
		updates["is_private"] = *req.IsPrivate
	}
	if len(updates) == 0 {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "nothing to update"))
		return
	}

	if err := h.GroupRepo.UpdateGroup(groupID, updates); err != nil {
		respondError(w, err)
		return
	}

	group, err := h.GroupRepo.GetGroupByID(groupID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, group)
}

// DeleteGroup handles DELETE /groups/{id}, admin-only. Cascades to members,
// messages and votes.
func (h *HandlerManager) DeleteGroup(w http.ResponseWriter, r *http.Request) {
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

	if err := h.requireAdmin(groupID, userID); err != nil {
		respondError(w, err)
		return
	}
	if err := h.GroupRepo.DeleteGroup(groupID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "group deleted"})
}

// AddMember handles POST /groups/{id}/members, admin-only.
func (h *HandlerManager) AddMember(w http.ResponseWriter, r *http.Request) {
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

	if err := h.requireAdmin(groupID, userID); err != nil {
		respondError(w, err)
		return
	}

	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.UserID == 0 {
		respondError(w, apperr.New(apperr.ErrCodeValidation, "user_id is required"))
		return
	}

	exists, err := h.UserRepo.UserExists(req.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !exists {
		respondError(w, apperr.New(apperr.ErrCodeNotFound, "user not found"))
		return
	}

	if err := h.GroupRepo.AddMember(groupID, req.UserID); err != nil {
		respondError(w, err)
		return
	}

	h.appendSystemMessage(groupID, userID, memberEventContent(h, req.UserID, "joined the group"))
	respondJSON(w, http.StatusCreated, map[string]string{"message": "member added"})
}

// RemoveMember handles DELETE /groups/{id}/members with {"user_id": N}.
// Allowed for self-leave or by an admin.
func (h *HandlerManager) RemoveMember(w http.ResponseWriter, r *http.Request) {
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

	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	target := req.UserID
	if target == 0 {
		target = userID
	}

	if target != userID {
		if err := h.requireAdmin(groupID, userID); err != nil {
			respondError(w, err)
			return
		}
	}

	if err := h.GroupRepo.RemoveMember(groupID, target); err != nil {
		respondError(w, err)
		return
	}

	h.appendSystemMessage(groupID, userID, memberEventContent(h, target, "left the group"))
	respondJSON(w, http.StatusOK, map[string]string{"message": "member removed"})
}

func (h *HandlerManager) requireAdmin(groupID, userID uint) error {
	if _, err := h.GroupRepo.GetGroupByID(groupID); err != nil {
		return err
	}
	admin, err := h.GroupRepo.IsAdmin(groupID, userID)
	if err != nil {
		return err
	}
	if !admin {
		return apperr.New(apperr.ErrCodeForbidden, "only a group admin can do this")
	}
	return nil
}

// appendSystemMessage records a membership event in the group timeline.
// Best-effort: a failed system message never fails the membership change.
func (h *HandlerManager) appendSystemMessage(groupID, actorID uint, content string) {
	msg := &models.Message{
		GroupID:  groupID,
		SenderID: actorID,
		Content:  content,
		Type:     models.MessageTypeSystem,
	}
	if err := h.MessageRepo.AppendMessage(msg); err != nil {
		logger.Error("failed to append system message", "group_id", groupID, "error", err)
	}
}

func memberEventContent(h *HandlerManager, userID uint, action string) string {
	user, err := h.UserRepo.GetUserByID(userID)
	if err != nil {
		return fmt.Sprintf("a member %s", action)
	}
	return fmt.Sprintf("%s %s", user.Name(), action)
}
