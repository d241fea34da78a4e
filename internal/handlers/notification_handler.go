package handlers

import (
	"net/http"
	"strconv"

	apperr "github.com/noelps-git/tastemates/pkg/errors"
	"github.com/noelps-git/tastemates/pkg/logger"
)

// ListNotifications handles GET /notifications?unread&limit.
func (h *HandlerManager) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, apperr.New(apperr.ErrCodeValidation, "limit must be a positive integer"))
			return
		}
		limit = n
	}
	if limit > 200 {
		limit = 200
	}

	notifications, err := h.NotificationRepo.ListNotifications(userID, unreadOnly, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// UnreadCount handles GET /notifications/unread-count. The counter is
// served cache-first; on a miss the database count is authoritative and
// reprimes the cache.
func (h *HandlerManager) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if h.Cache != nil {
		if count, hit, err := h.Cache.GetUnreadCount(r.Context(), userID); err == nil && hit {
			respondJSON(w, http.StatusOK, map[string]interface{}{"unread": count, "cached": true})
			return
		}
	}

	count, err := h.NotificationRepo.CountUnread(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if h.Cache != nil {
		if err := h.Cache.SetUnreadCount(r.Context(), userID, count); err != nil {
			logger.Warn("failed to prime unread counter", "user_id", userID, "error", err)
		}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"unread": count, "cached": false})
}

// MarkNotificationRead handles PUT /notifications/{id}.
func (h *HandlerManager) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	notificationID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.NotificationRepo.MarkRead(notificationID, userID); err != nil {
		respondError(w, err)
		return
	}
	h.invalidateUnread(r, userID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "notification marked as read"})
}

// MarkAllNotificationsRead handles PUT /notifications.
func (h *HandlerManager) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.NotificationRepo.MarkAllRead(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	h.invalidateUnread(r, userID)
	respondJSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
}

// DeleteNotification handles DELETE /notifications/{id}.
func (h *HandlerManager) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	userID, err := requestUser(r)
	if err != nil {
		respondError(w, err)
		return
	}
	notificationID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.NotificationRepo.DeleteNotification(notificationID, userID); err != nil {
		respondError(w, err)
		return
	}
	h.invalidateUnread(r, userID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "notification deleted"})
}

func (h *HandlerManager) invalidateUnread(r *http.Request, userID uint) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.InvalidateUnread(r.Context(), userID); err != nil {
		logger.Warn("failed to invalidate unread counter", "user_id", userID, "error", err)
	}
}
