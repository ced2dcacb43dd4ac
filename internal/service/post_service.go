package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"socialfeed/internal/apperrors"
	"socialfeed/internal/config"
	"socialfeed/internal/identity"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type PostService interface {
	CreatePost(ctx context.Context, ident *identity.Identity, req CreatePostRequest) (*models.FeedPost, error)
	UpdatePost(ctx context.Context, postID, callerID string, patch UpdatePostRequest) (*models.FeedPost, error)
	DeletePost(ctx context.Context, postID, callerID string) ([]string, error)
	ToggleLike(ctx context.Context, postID, callerID string) (int, bool, error)
}

type MediaUpload struct {
	FileName string
	File     io.Reader
	Size     int64
}

type CreatePostRequest struct {
	Title       string
	Description string
	Media       []MediaUpload
}

// UpdatePostRequest - патч поста. Title применяется только если непустой,
// Description применяется всегда, когда поле присутствует, включая пустую
// строку: автор может очистить описание, но не заголовок.
type UpdatePostRequest struct {
	Title       string
	Description *string
}

type postService struct {
	postRepo repository.PostRepository
	media    storage.MediaStore
	cfg      *config.Config
}

func NewPostService(postRepo repository.PostRepository, media storage.MediaStore, cfg *config.Config) PostService {
	return &postService{
		postRepo: postRepo,
		media:    media,
		cfg:      cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, ident *identity.Identity, req CreatePostRequest) (*models.FeedPost, error) {
	// при создании обязательны оба поля; при обновлении описание можно очистить
	if req.Title == "" || req.Description == "" {
		return nil, fmt.Errorf("требуются заголовок и описание: %w", apperrors.ErrValidation)
	}

	// сохраняем файлы в исходном порядке, собирая ссылки
	mediaRefs := make([]string, 0, len(req.Media))
	for _, upload := range req.Media {
		ref, err := p.media.Store(ctx, upload.FileName, upload.File, upload.Size)
		if err != nil {
			p.releaseRefs(ctx, mediaRefs)
			return nil, fmt.Errorf("ошибка загрузки медиа: %w", errors.Join(apperrors.ErrInfrastructure, err))
		}
		mediaRefs = append(mediaRefs, ref)
	}

	post := &models.Post{
		AuthorID:        ident.UID,
		AuthorName:      ident.DisplayName,
		AuthorAvatarRef: ident.AvatarRef,
		Title:           req.Title,
		Description:     req.Description,
		MediaRefs:       mediaRefs,
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		p.releaseRefs(ctx, mediaRefs)
		return nil, err
	}

	enriched, err := resolvePost(ctx, p.media, *post, post.AuthorAvatarRef)
	if err != nil {
		return nil, err
	}

	return &enriched, nil
}

func (p *postService) UpdatePost(ctx context.Context, postID, callerID string, patch UpdatePostRequest) (*models.FeedPost, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, fmt.Errorf("нет прав на изменение этого поста: %w", apperrors.ErrForbidden)
	}

	if patch.Title != "" {
		post.Title = patch.Title
	}
	if patch.Description != nil {
		post.Description = *patch.Description
	}

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		return nil, err
	}

	enriched, err := resolvePost(ctx, p.media, *post, post.AuthorAvatarRef)
	if err != nil {
		return nil, err
	}

	return &enriched, nil
}

// DeletePost удаляет пост владельца. Файлы удаляются по одному best-effort:
// неудачное удаление файла не блокирует операцию, а попадает в список
// предупреждений. Запись поста удаляется последней, чтобы сбой посередине
// оставил максимум осиротевший файл, но не пост со ссылками в никуда.
func (p *postService) DeletePost(ctx context.Context, postID, callerID string) ([]string, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != callerID {
		return nil, fmt.Errorf("нет прав на удаление этого поста: %w", apperrors.ErrForbidden)
	}

	var warnings []string
	for _, ref := range post.MediaRefs {
		if err := p.media.Delete(ctx, ref); err != nil {
			log.Printf("Предупреждение: не удалось удалить медиа %s: %v", ref, err)
			warnings = append(warnings, fmt.Sprintf("медиа %s не удалено", ref))
		}
	}

	err = p.postRepo.Delete(ctx, postID)
	if err != nil {
		return nil, err
	}

	return warnings, nil
}

func (p *postService) ToggleLike(ctx context.Context, postID, callerID string) (int, bool, error) {
	return p.postRepo.ToggleLike(ctx, postID, callerID)
}

// releaseRefs убирает уже загруженные файлы, когда создание поста сорвалось
func (p *postService) releaseRefs(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := p.media.Delete(ctx, ref); err != nil {
			log.Printf("Предупреждение: не удалось удалить медиа %s: %v", ref, err)
		}
	}
}
