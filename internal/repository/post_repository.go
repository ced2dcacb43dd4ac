package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialfeed/internal/apperrors"
	"socialfeed/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (post_id, author_id, author_name, author_avatar_ref, title, description, media_refs, liker_ids, created_at)
        VALUES
        (:post_id, :author_id, :author_name, :author_avatar_ref, :title, :description, :media_refs, :liker_ids, :created_at)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	if post.MediaRefs == nil {
		post.MediaRefs = pq.StringArray{}
	}
	post.LikerIDs = pq.StringArray{}
	post.CreatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE post_id = $1
    `

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetByAuthorID(ctx context.Context, authorID string) ([]models.Post, error) {
	query := `
        SELECT * FROM posts
        WHERE author_id = $1
        ORDER BY created_at DESC, post_id DESC
    `

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов автора: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	return posts, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context, limit, offset int) ([]models.Post, error) {
	// post_id вторым ключом, чтобы страницы были стабильны при равных created_at
	query := `
        SELECT * FROM posts
        ORDER BY created_at DESC, post_id DESC
        LIMIT $1 OFFSET $2
    `

	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	return posts, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			description = :description
		WHERE post_id = :post_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", post.PostID, apperrors.ErrNotFound)
	}

	return nil
}

// UpdateAuthorFields переписывает денормализованные поля автора во всех его постах
// одним запросом; возвращает количество обновленных постов.
func (r *PostRepositoryImpl) UpdateAuthorFields(ctx context.Context, authorID, authorName, authorAvatarRef string) (int64, error) {
	query := `
		UPDATE posts SET
			author_name = $2,
			author_avatar_ref = $3
		WHERE author_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, authorID, authorName, authorAvatarRef)
	if err != nil {
		return 0, fmt.Errorf("ошибка при синхронизации данных автора: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка при проверке обновленных строк: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	return rowsAffected, nil
}

// ToggleLike - атомарное переключение принадлежности к множеству лайкнувших.
// Один условный UPDATE вместо fetch-modify-write, чтобы два конкурентных
// переключения не потеряли друг друга.
func (r *PostRepositoryImpl) ToggleLike(ctx context.Context, postID, callerID string) (int, bool, error) {
	query := `
		UPDATE posts SET
			liker_ids = CASE
				WHEN $2 = ANY(liker_ids) THEN array_remove(liker_ids, $2)
				ELSE array_append(liker_ids, $2)
			END
		WHERE post_id = $1
		RETURNING cardinality(liker_ids), $2 = ANY(liker_ids)
	`

	var likesCount int
	var liked bool
	err := r.db.QueryRowxContext(ctx, query, postID, callerID).Scan(&likesCount, &liked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
		}
		return 0, false, fmt.Errorf("ошибка при переключении лайка: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	return likesCount, liked, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост с ID %s: %w", postID, apperrors.ErrNotFound)
	}

	return nil
}
