package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/noelps-git/tastemates/internal/cache"
	"github.com/noelps-git/tastemates/internal/models"
	"github.com/noelps-git/tastemates/internal/repositories"
	"github.com/noelps-git/tastemates/pkg/logger"
)

// Social event types handled by the fan-out engine.
const (
	EventFriendRequest   = "friend_request"
	EventFriendAccepted  = "friend_accepted"
	EventCommentPosted   = "comment_posted"
	EventReviewPublished = "review_published"
)

// SocialEvent is the unit handed from a triggering write to the fan-out
// workers. Which fields matter depends on Type; see the publish helpers.
type SocialEvent struct {
	Type           string
	ActorID        uint
	ActorName      string
	TargetUserID   uint
	FriendshipID   uint
	NoteID         uint
	Rating         int
	RestaurantID   uint
	RestaurantName string
}

// FanoutService materializes per-recipient notification rows from social
// events. Delivery is best-effort and decoupled from the triggering
// transaction: Publish never blocks, a full queue drops the event, and
// per-recipient insert failures are logged without affecting the rest.
type FanoutService struct {
	notificationRepo *repositories.NotificationRepository
	friendRepo       *repositories.FriendRepository
	cache            *cache.RedisCache

	queue    chan SocialEvent
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewFanoutService starts the worker pool. cache may be nil when Redis is
// not configured.
func NewFanoutService(
	notificationRepo *repositories.NotificationRepository,
	friendRepo *repositories.FriendRepository,
	redisCache *cache.RedisCache,
	workers, queueSize int,
) *FanoutService {
	s := &FanoutService{
		notificationRepo: notificationRepo,
		friendRepo:       friendRepo,
		cache:            redisCache,
		queue:            make(chan SocialEvent, queueSize),
	}

	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}

	return s
}

// Publish hands an event to the pool without blocking the caller. A full
// queue means the event is dropped and logged; the triggering write has
// already committed and must not be affected.
func (s *FanoutService) Publish(evt SocialEvent) {
	select {
	case s.queue <- evt:
	default:
		logger.Warn("notification queue full, dropping event",
			"type", evt.Type, "actor", evt.ActorID)
	}
}

// Stop drains the queue and waits for in-flight work to finish.
func (s *FanoutService) Stop() {
	s.stopOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
}

func (s *FanoutService) worker() {
	defer s.wg.Done()
	for evt := range s.queue {
		s.process(evt)
	}
}

func (s *FanoutService) process(evt SocialEvent) {
	switch evt.Type {
	case EventFriendRequest:
		s.deliver(&models.Notification{
			UserID:  evt.TargetUserID,
			Type:    models.NotificationTypeFriendRequest,
			Title:   "New friend request",
			Message: fmt.Sprintf("%s sent you a friend request", evt.ActorName),
			Link:    "/friends",
			Metadata: metadata(map[string]interface{}{
				"friendship_id": evt.FriendshipID,
				"requester_id":  evt.ActorID,
			}),
		})

	case EventFriendAccepted:
		s.deliver(&models.Notification{
			UserID:  evt.TargetUserID,
			Type:    models.NotificationTypeFriendAccepted,
			Title:   "Friend request accepted",
			Message: fmt.Sprintf("%s accepted your friend request", evt.ActorName),
			Link:    "/friends",
			Metadata: metadata(map[string]interface{}{
				"friendship_id": evt.FriendshipID,
				"accepter_id":   evt.ActorID,
			}),
		})

	case EventCommentPosted:
		if evt.TargetUserID == evt.ActorID {
			return
		}
		s.deliver(&models.Notification{
			UserID:  evt.TargetUserID,
			Type:    models.NotificationTypeComment,
			Title:   "New comment",
			Message: fmt.Sprintf("%s commented on your note", evt.ActorName),
			Link:    fmt.Sprintf("/notes/%d", evt.NoteID),
			Metadata: metadata(map[string]interface{}{
				"note_id":      evt.NoteID,
				"commenter_id": evt.ActorID,
			}),
		})

	case EventReviewPublished:
		s.fanOutReview(evt)

	default:
		logger.Warn("unknown social event type", "type", evt.Type)
	}
}

// fanOutReview writes one friend_review row per accepted friend of the
// reviewer. The metadata carries everything the bucket-list flow needs, so
// acting on the notification requires no further join.
func (s *FanoutService) fanOutReview(evt SocialEvent) {
	friendIDs, err := s.friendRepo.GetFriendIDs(evt.ActorID)
	if err != nil {
		logger.Error("failed to compute review fan-out recipients",
			"reviewer", evt.ActorID, "error", err)
		return
	}

	meta := metadata(map[string]interface{}{
		"note_id":         evt.NoteID,
		"reviewer_id":     evt.ActorID,
		"restaurant_id":   evt.RestaurantID,
		"restaurant_name": evt.RestaurantName,
		"rating":          evt.Rating,
	})

	for _, friendID := range friendIDs {
		s.deliver(&models.Notification{
			UserID:   friendID,
			Type:     models.NotificationTypeFriendReview,
			Title:    "Friend review",
			Message:  fmt.Sprintf("%s reviewed %s", evt.ActorName, evt.RestaurantName),
			Link:     fmt.Sprintf("/notes/%d", evt.NoteID),
			Metadata: meta,
		})
	}
}

// deliver performs one independent notification insert. Failures are logged
// and never retried; partial fan-out is acceptable.
func (s *FanoutService) deliver(n *models.Notification) {
	if err := s.notificationRepo.CreateNotification(n); err != nil {
		logger.Error("failed to deliver notification",
			"recipient", n.UserID, "type", n.Type, "error", err)
		return
	}

	if s.cache != nil {
		if err := s.cache.IncrUnread(context.Background(), n.UserID); err != nil {
			logger.Warn("failed to bump unread counter",
				"recipient", n.UserID, "error", err)
		}
	}
}

func metadata(fields map[string]interface{}) string {
	b, err := json.Marshal(fields)
	if err != nil {
		return "{}"
	}
	return string(b)
}
