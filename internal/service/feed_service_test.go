package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/apperrors"
	"socialfeed/internal/models"
)

func TestFeedService_ListFeed(t *testing.T) {
	ctx := context.Background()

	t.Run("Лента предпочитает живые данные автора снимку", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		media := new(MockMediaStore)

		now := time.Now()
		posts := []models.Post{
			{PostID: "p2", AuthorID: "u1", AuthorName: "Старое имя", AuthorAvatarRef: "media/old.jpg", Title: "Второй", CreatedAt: now},
			{PostID: "p1", AuthorID: "u2", AuthorName: "Призрак", AuthorAvatarRef: "media/ghost.jpg", Title: "Первый", CreatedAt: now.Add(-time.Hour)},
		}

		postRepo.On("List", ctx, 20, 0).Return(posts, nil)
		// u2 удален или так и не синхронизирован - записи нет
		userRepo.On("GetByUIDs", ctx, []string{"u1", "u2"}).Return([]models.User{
			{UID: "u1", DisplayName: "Новое имя", AvatarRef: "media/new.jpg"},
		}, nil)

		media.On("Resolve", ctx, "media/new.jpg").Return("http://cdn/new.jpg", nil)
		media.On("Resolve", ctx, "media/ghost.jpg").Return("http://cdn/ghost.jpg", nil)

		svc := NewFeedService(postRepo, userRepo, media)
		feed, err := svc.ListFeed(ctx, 1, 20)

		require.NoError(t, err)
		require.Len(t, feed, 2)

		// живая запись пользователя перекрывает снимок
		assert.Equal(t, "Новое имя", feed[0].AuthorName)
		assert.Equal(t, "http://cdn/new.jpg", feed[0].AuthorAvatarURL)

		// fallback на денормализованный снимок
		assert.Equal(t, "Призрак", feed[1].AuthorName)
		assert.Equal(t, "http://cdn/ghost.jpg", feed[1].AuthorAvatarURL)

		// порядок из репозитория не нарушается
		assert.Equal(t, "p2", feed[0].PostID)
		assert.Equal(t, "p1", feed[1].PostID)
	})

	t.Run("Медиа-ссылки разрешаются в URL с сохранением порядка", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		media := new(MockMediaStore)

		posts := []models.Post{
			{PostID: "p1", AuthorID: "u1", AuthorName: "Alice", MediaRefs: pq.StringArray{"media/1.jpg", "media/2.jpg"}},
		}

		postRepo.On("List", ctx, 20, 0).Return(posts, nil)
		userRepo.On("GetByUIDs", ctx, []string{"u1"}).Return([]models.User{}, nil)
		media.On("Resolve", ctx, "media/1.jpg").Return("http://cdn/1.jpg", nil)
		media.On("Resolve", ctx, "media/2.jpg").Return("http://cdn/2.jpg", nil)
		media.On("Resolve", ctx, "").Return("", nil)

		svc := NewFeedService(postRepo, userRepo, media)
		feed, err := svc.ListFeed(ctx, 1, 20)

		require.NoError(t, err)
		assert.Equal(t, []string{"http://cdn/1.jpg", "http://cdn/2.jpg"}, feed[0].MediaURLs)
	})

	t.Run("Пагинация: смещение считается от страницы", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		media := new(MockMediaStore)

		postRepo.On("List", ctx, 10, 20).Return([]models.Post{}, nil)
		userRepo.On("GetByUIDs", ctx, []string{}).Return([]models.User{}, nil)
		resolveAnything(media)

		svc := NewFeedService(postRepo, userRepo, media)
		feed, err := svc.ListFeed(ctx, 3, 10)

		require.NoError(t, err)
		assert.Empty(t, feed)
		postRepo.AssertCalled(t, "List", ctx, 10, 20)
	})

	t.Run("Некорректная страница отклоняется", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		media := new(MockMediaStore)

		svc := NewFeedService(postRepo, userRepo, media)

		_, err := svc.ListFeed(ctx, 0, 20)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = svc.ListFeed(ctx, 1, 0)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		postRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Ошибка репозитория не подменяется пустой лентой", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		media := new(MockMediaStore)

		infra := errors.Join(apperrors.ErrInfrastructure, errors.New("connection refused"))
		postRepo.On("List", ctx, 20, 0).Return(nil, infra)

		svc := NewFeedService(postRepo, userRepo, media)
		feed, err := svc.ListFeed(ctx, 1, 20)

		assert.Nil(t, feed)
		assert.ErrorIs(t, err, apperrors.ErrInfrastructure)
	})
}

func TestFeedService_GetPost(t *testing.T) {
	ctx := context.Background()

	t.Run("Отдельный пост тоже обогащается живым автором", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		media := new(MockMediaStore)

		post := &models.Post{PostID: "p1", AuthorID: "u1", AuthorName: "Старое имя", Title: "Hi"}
		postRepo.On("GetByID", ctx, "p1").Return(post, nil)
		userRepo.On("GetByUIDs", ctx, []string{"u1"}).Return([]models.User{
			{UID: "u1", DisplayName: "Новое имя"},
		}, nil)
		resolveAnything(media)

		svc := NewFeedService(postRepo, userRepo, media)
		enriched, err := svc.GetPost(ctx, "p1")

		require.NoError(t, err)
		assert.Equal(t, "Новое имя", enriched.AuthorName)
	})

	t.Run("Пост не найден", func(t *testing.T) {
		postRepo := new(MockPostRepository)
		userRepo := new(MockUserRepository)
		media := new(MockMediaStore)

		notFound := errors.Join(apperrors.ErrNotFound)
		postRepo.On("GetByID", ctx, "missing").Return(nil, notFound)

		svc := NewFeedService(postRepo, userRepo, media)
		enriched, err := svc.GetPost(ctx, "missing")

		assert.Nil(t, enriched)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
