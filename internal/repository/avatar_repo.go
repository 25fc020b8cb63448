package repository

import (
	"context"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
)

type AvatarRepository struct {
	db DBTX
}

func NewAvatarRepository(db DBTX) *AvatarRepository {
	return &AvatarRepository{db: db}
}

// Upsert keeps one avatar row per user; a new upload replaces the URL.
func (r *AvatarRepository) Upsert(ctx context.Context, userID int64, avatarURL string) (*models.Avatar, error) {
	query := `
		INSERT INTO user_avatars (user_id, avatar_url)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET avatar_url = EXCLUDED.avatar_url,
			updated_at = NOW()
		RETURNING id, user_id, avatar_url, created_at, updated_at
	`
	var avatar models.Avatar
	err := r.db.QueryRow(ctx, query, userID, avatarURL).Scan(
		&avatar.ID,
		&avatar.UserID,
		&avatar.AvatarURL,
		&avatar.CreatedAt,
		&avatar.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &avatar, nil
}

func (r *AvatarRepository) GetByUserID(ctx context.Context, userID int64) (*models.Avatar, error) {
	query := `
		SELECT id, user_id, avatar_url, created_at, updated_at
		FROM user_avatars
		WHERE user_id = $1
	`
	var avatar models.Avatar
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&avatar.ID,
		&avatar.UserID,
		&avatar.AvatarURL,
		&avatar.CreatedAt,
		&avatar.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &avatar, nil
}

func (r *AvatarRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM user_avatars WHERE user_id = $1`, userID)
	return err
}
