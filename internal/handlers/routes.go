package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes attaches all authenticated API routes to the given
// subrouter. Health and other public endpoints are registered by the
// caller outside the auth middleware.
func (h *HandlerManager) RegisterRoutes(api *mux.Router) {
	// Friendship
	api.HandleFunc("/friends", h.RequestFriend).Methods(http.MethodPost)
	api.HandleFunc("/friends", h.ListFriends).Methods(http.MethodGet)
	api.HandleFunc("/friends/{id:[0-9]+}", h.RespondToFriend).Methods(http.MethodPut)
	api.HandleFunc("/friends/{id:[0-9]+}", h.RemoveFriendship).Methods(http.MethodDelete)

	// Groups and membership
	api.HandleFunc("/groups", h.CreateGroup).Methods(http.MethodPost)
	api.HandleFunc("/groups", h.ListGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id:[0-9]+}", h.GetGroup).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id:[0-9]+}", h.UpdateGroup).Methods(http.MethodPut)
	api.HandleFunc("/groups/{id:[0-9]+}", h.DeleteGroup).Methods(http.MethodDelete)
	api.HandleFunc("/groups/{id:[0-9]+}/members", h.AddMember).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id:[0-9]+}/members", h.RemoveMember).Methods(http.MethodDelete)

	// Group messages (poll-based reads)
	api.HandleFunc("/groups/{id:[0-9]+}/messages", h.PostMessage).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id:[0-9]+}/messages", h.FetchMessages).Methods(http.MethodGet)

	// Votes
	api.HandleFunc("/groups/{id:[0-9]+}/votes", h.CreateVote).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id:[0-9]+}/votes", h.ListVotes).Methods(http.MethodGet)
	api.HandleFunc("/votes/{id:[0-9]+}/respond", h.SubmitVoteResponse).Methods(http.MethodPost)
	api.HandleFunc("/votes/{id:[0-9]+}/respond", h.GetVoteResults).Methods(http.MethodGet)

	// Notifications
	api.HandleFunc("/notifications", h.ListNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications", h.MarkAllNotificationsRead).Methods(http.MethodPut)
	api.HandleFunc("/notifications/unread-count", h.UnreadCount).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id:[0-9]+}", h.MarkNotificationRead).Methods(http.MethodPut)
	api.HandleFunc("/notifications/{id:[0-9]+}", h.DeleteNotification).Methods(http.MethodDelete)

	// Bucket list
	api.HandleFunc("/bucket-list", h.AddBucketListItem).Methods(http.MethodPost)
	api.HandleFunc("/bucket-list", h.ListBucketList).Methods(http.MethodGet)
	api.HandleFunc("/bucket-list/{id:[0-9]+}", h.UpdateBucketListItem).Methods(http.MethodPut)
	api.HandleFunc("/bucket-list/{id:[0-9]+}", h.RemoveBucketListItem).Methods(http.MethodDelete)
}

// Health responds to GET /health for load balancer checks.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
