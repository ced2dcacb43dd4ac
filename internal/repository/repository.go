package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"socialfeed/internal/models"
)

type UserRepository interface {
	Upsert(ctx context.Context, user *models.User) (*models.User, error)
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	GetByUIDs(ctx context.Context, uids []string) ([]models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error)
	List(ctx context.Context, limit, offset int) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateAuthorFields(ctx context.Context, authorID, authorName, authorAvatarRef string) (int64, error)
	ToggleLike(ctx context.Context, postID, callerID string) (int, bool, error)
	Delete(ctx context.Context, postID string) error
}

type Repository struct {
	User UserRepository
	Post PostRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Post: NewPostRepository(db),
	}
}
