package repository

import (
	"context"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
)

type PasswordResetRepository struct {
	db DBTX
}

func NewPasswordResetRepository(db DBTX) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, reset *models.PasswordReset) error {
	query := `
		INSERT INTO password_resets (id, user_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, reset.ID, reset.UserID, reset.TokenHash, reset.ExpiresAt).
		Scan(&reset.CreatedAt)
}

// ConsumeActive marks an unused, unexpired reset as used and returns it.
// pgx.ErrNoRows means the token is unknown, spent or expired.
func (r *PasswordResetRepository) ConsumeActive(ctx context.Context, tokenHash string, now time.Time) (*models.PasswordReset, error) {
	query := `
		UPDATE password_resets
		SET used_at = $2
		WHERE token_hash = $1 AND used_at IS NULL AND expires_at > $2
		RETURNING id, user_id, token_hash, expires_at, used_at, created_at
	`
	var reset models.PasswordReset
	err := r.db.QueryRow(ctx, query, tokenHash, now).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.TokenHash,
		&reset.ExpiresAt,
		&reset.UsedAt,
		&reset.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &reset, nil
}
