package service

import (
	"socialfeed/internal/config"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type Service struct {
	Feed    FeedService
	Post    PostService
	Profile ProfileService
}

func NewService(rep *repository.Repository, cfg *config.Config, media storage.MediaStore) *Service {
	return &Service{
		Feed:    NewFeedService(rep.Post, rep.User, media),
		Post:    NewPostService(rep.Post, media, cfg),
		Profile: NewProfileService(rep.User, rep.Post, media),
	}
}
