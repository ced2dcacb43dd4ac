package service

import (
	"context"
	"log"

	"socialfeed/internal/identity"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/storage"
)

type ProfileService interface {
	EnsureUser(ctx context.Context, ident *identity.Identity) (*models.User, error)
	GetProfile(ctx context.Context, ident *identity.Identity) (*models.Profile, error)
	UpdateProfile(ctx context.Context, uid string, patch UpdateProfileRequest) (*models.Profile, int64, error)
}

// UpdateProfileRequest - патч профиля; nil-поля не трогаются
type UpdateProfileRequest struct {
	DisplayName *string
	Bio         *string
	Avatar      *MediaUpload
	Banner      *MediaUpload
}

type profileService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	media    storage.MediaStore
}

func NewProfileService(userRepo repository.UserRepository, postRepo repository.PostRepository, media storage.MediaStore) ProfileService {
	return &profileService{
		userRepo: userRepo,
		postRepo: postRepo,
		media:    media,
	}
}

// EnsureUser лениво создает запись профиля при первом аутентифицированном
// обращении; существующая запись не перезаписывается.
func (s *profileService) EnsureUser(ctx context.Context, ident *identity.Identity) (*models.User, error) {
	user := &models.User{
		UID:         ident.UID,
		DisplayName: ident.DisplayName,
		Email:       ident.Email,
		AvatarRef:   ident.AvatarRef,
	}

	return s.userRepo.Upsert(ctx, user)
}

func (s *profileService) GetProfile(ctx context.Context, ident *identity.Identity) (*models.Profile, error) {
	user, err := s.EnsureUser(ctx, ident)
	if err != nil {
		return nil, err
	}

	posts, err := s.postRepo.GetByAuthorID(ctx, user.UID)
	if err != nil {
		return nil, err
	}

	feedPosts := make([]models.FeedPost, 0, len(posts))
	for _, post := range posts {
		// в собственном профиле автор всегда актуален
		post.AuthorName = user.DisplayName
		enriched, err := resolvePost(ctx, s.media, post, user.AvatarRef)
		if err != nil {
			return nil, err
		}
		feedPosts = append(feedPosts, enriched)
	}

	profile, err := s.buildProfile(ctx, user)
	if err != nil {
		return nil, err
	}
	profile.Posts = feedPosts

	return profile, nil
}

// UpdateProfile применяет патч к записи пользователя и разносит изменившиеся
// денормализованные поля по всем его постам. Возвращает количество
// обновленных постов. Если фан-аут упал после обновления профиля, запись
// пользователя уже корректна, а посты останутся устаревшими до следующего
// успешного обновления; лента это маскирует живой подстановкой автора.
func (s *profileService) UpdateProfile(ctx context.Context, uid string, patch UpdateProfileRequest) (*models.Profile, int64, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		return nil, 0, err
	}

	if patch.DisplayName != nil && *patch.DisplayName != "" {
		user.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}

	if patch.Avatar != nil {
		ref, err := s.media.Store(ctx, patch.Avatar.FileName, patch.Avatar.File, patch.Avatar.Size)
		if err != nil {
			return nil, 0, err
		}
		s.releaseRef(ctx, user.AvatarRef)
		user.AvatarRef = ref
	}

	if patch.Banner != nil {
		ref, err := s.media.Store(ctx, patch.Banner.FileName, patch.Banner.File, patch.Banner.Size)
		if err != nil {
			return nil, 0, err
		}
		s.releaseRef(ctx, user.BannerRef)
		user.BannerRef = ref
	}

	err = s.userRepo.UpdateProfile(ctx, user)
	if err != nil {
		return nil, 0, err
	}

	// фан-аут: один bulk UPDATE по всем постам автора, без проверок на пост -
	// триггер уже ограничен владельцем профиля
	postsUpdated, err := s.postRepo.UpdateAuthorFields(ctx, uid, user.DisplayName, user.AvatarRef)
	if err != nil {
		return nil, 0, err
	}

	profile, err := s.buildProfile(ctx, user)
	if err != nil {
		return nil, 0, err
	}

	return profile, postsUpdated, nil
}

func (s *profileService) buildProfile(ctx context.Context, user *models.User) (*models.Profile, error) {
	avatarURL, err := s.media.Resolve(ctx, user.AvatarRef)
	if err != nil {
		return nil, err
	}

	bannerURL, err := s.media.Resolve(ctx, user.BannerRef)
	if err != nil {
		return nil, err
	}

	return &models.Profile{
		User:      *user,
		AvatarURL: avatarURL,
		BannerURL: bannerURL,
	}, nil
}

// releaseRef убирает замененный файл best-effort
func (s *profileService) releaseRef(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.media.Delete(ctx, ref); err != nil {
		log.Printf("Предупреждение: не удалось удалить старый файл %s: %v", ref, err)
	}
}
