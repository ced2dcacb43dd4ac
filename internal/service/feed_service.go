package service

import (
	"context"
	"fmt"

	"socialfeed/internal/apperrors"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type FeedService interface {
	ListFeed(ctx context.Context, page, pageSize int) ([]models.FeedPost, error)
	GetPost(ctx context.Context, postID string) (*models.FeedPost, error)
}

type feedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	media    storage.MediaStore
}

func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository, media storage.MediaStore) FeedService {
	return &feedService{
		postRepo: postRepo,
		userRepo: userRepo,
		media:    media,
	}
}

func (s *feedService) ListFeed(ctx context.Context, page, pageSize int) ([]models.FeedPost, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("page и pageSize должны быть не меньше 1: %w", apperrors.ErrValidation)
	}

	posts, err := s.postRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	// collecting distinct author ids for a single batched lookup
	authorSet := make(map[string]struct{}, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for _, post := range posts {
		if _, ok := authorSet[post.AuthorID]; !ok {
			authorSet[post.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, post.AuthorID)
		}
	}

	users, err := s.userRepo.GetByUIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	userMap := make(map[string]models.User, len(users))
	for _, user := range users {
		userMap[user.UID] = user
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, post := range posts {
		enriched, err := s.enrich(ctx, post, userMap)
		if err != nil {
			return nil, err
		}
		feed = append(feed, enriched)
	}

	return feed, nil
}

func (s *feedService) GetPost(ctx context.Context, postID string) (*models.FeedPost, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	userMap := make(map[string]models.User, 1)
	users, err := s.userRepo.GetByUIDs(ctx, []string{post.AuthorID})
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		userMap[user.UID] = user
	}

	enriched, err := s.enrich(ctx, *post, userMap)
	if err != nil {
		return nil, err
	}

	return &enriched, nil
}

// enrich подставляет актуальные имя и аватар автора, когда запись пользователя
// есть; иначе остается денормализованный снимок из самого поста.
func (s *feedService) enrich(ctx context.Context, post models.Post, userMap map[string]models.User) (models.FeedPost, error) {
	authorName := post.AuthorName
	avatarRef := post.AuthorAvatarRef

	if user, ok := userMap[post.AuthorID]; ok {
		authorName = user.DisplayName
		avatarRef = user.AvatarRef
	}

	post.AuthorName = authorName
	return resolvePost(ctx, s.media, post, avatarRef)
}

// resolvePost разрешает все медиа-ссылки поста и аватар автора в URL
func resolvePost(ctx context.Context, media storage.MediaStore, post models.Post, avatarRef string) (models.FeedPost, error) {
	mediaURLs := make([]string, 0, len(post.MediaRefs))
	for _, ref := range post.MediaRefs {
		url, err := media.Resolve(ctx, ref)
		if err != nil {
			return models.FeedPost{}, err
		}
		mediaURLs = append(mediaURLs, url)
	}

	avatarURL, err := media.Resolve(ctx, avatarRef)
	if err != nil {
		return models.FeedPost{}, err
	}

	return models.FeedPost{
		Post:            post,
		AuthorAvatarURL: avatarURL,
		MediaURLs:       mediaURLs,
	}, nil
}
