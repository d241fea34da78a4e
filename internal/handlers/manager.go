package handlers

import (
	"github.com/noelps-git/tastemates/internal/cache"
	"github.com/noelps-git/tastemates/internal/config"
	"github.com/noelps-git/tastemates/internal/repositories"
	"github.com/noelps-git/tastemates/internal/services"
	"gorm.io/gorm"
)

type HandlerManager struct {
	Config           *config.Config
	DB               *gorm.DB
	UserRepo         *repositories.UserRepository
	FriendRepo       *repositories.FriendRepository
	GroupRepo        *repositories.GroupRepository
	MessageRepo      *repositories.MessageRepository
	VoteRepo         *repositories.VoteRepository
	NotificationRepo *repositories.NotificationRepository
	BucketListRepo   *repositories.BucketListRepository
	Fanout           *services.FanoutService
	Cache            *cache.RedisCache
}

func NewHandlerManager(
	cfg *config.Config,
	db *gorm.DB,
	userRepo *repositories.UserRepository,
	friendRepo *repositories.FriendRepository,
	groupRepo *repositories.GroupRepository,
	messageRepo *repositories.MessageRepository,
	voteRepo *repositories.VoteRepository,
	notificationRepo *repositories.NotificationRepository,
	bucketListRepo *repositories.BucketListRepository,
	fanout *services.FanoutService,
	redisCache *cache.RedisCache,
) *HandlerManager {
	return &HandlerManager{
		Config:           cfg,
		DB:               db,
		UserRepo:         userRepo,
		FriendRepo:       friendRepo,
		GroupRepo:        groupRepo,
		MessageRepo:      messageRepo,
		VoteRepo:         voteRepo,
		NotificationRepo: notificationRepo,
		BucketListRepo:   bucketListRepo,
		Fanout:           fanout,
		Cache:            redisCache,
	}
}
