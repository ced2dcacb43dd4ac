package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"socialfeed/internal/apperrors"
	"socialfeed/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Upsert создает запись пользователя при первом обращении. Одна атомарная
// команда вместо read-then-write, чтобы два конкурентных первых входа
// не создали дубликат uid. При конфликте возвращается существующая строка,
// поля профиля не перезаписываются.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (uid, display_name, email, avatar_ref, banner_ref, bio)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uid) DO UPDATE SET uid = EXCLUDED.uid
		RETURNING uid, display_name, email, avatar_ref, banner_ref, bio
	`

	var stored models.User
	err := r.db.GetContext(ctx, &stored, query,
		user.UID, user.DisplayName, user.Email, user.AvatarRef, user.BannerRef, user.Bio)
	if err != nil {
		return nil, fmt.Errorf("ошибка при создании пользователя: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	return &stored, nil
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User

	query := `SELECT * FROM users WHERE uid = $1`

	err := r.db.GetContext(ctx, &user, query, uid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с uid %s: %w", uid, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	return &user, nil
}

func (r *userRepository) GetByUIDs(ctx context.Context, uids []string) ([]models.User, error) {
	if len(uids) == 0 {
		return nil, nil
	}

	query := `SELECT * FROM users WHERE uid = ANY($1)`

	var users []models.User
	err := r.db.SelectContext(ctx, &users, query, pq.Array(uids))
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении пользователей: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET display_name = :display_name, avatar_ref = :avatar_ref, banner_ref = :banner_ref, bio = :bio
		WHERE uid = :uid
	`

	result, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении пользователя: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", errors.Join(apperrors.ErrInfrastructure, err))
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пользователь с uid %s: %w", user.UID, apperrors.ErrNotFound)
	}

	return nil
}
