package repository

import (
	"context"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
)

type AuthSessionRepository struct {
	db DBTX
}

func NewAuthSessionRepository(db DBTX) *AuthSessionRepository {
	return &AuthSessionRepository{db: db}
}

func (r *AuthSessionRepository) Create(ctx context.Context, session *models.AuthSession) error {
	query := `
		INSERT INTO auth_sessions (id, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	return r.db.QueryRow(ctx, query, session.ID, session.UserID, session.ExpiresAt).Scan(&session.CreatedAt)
}

func (r *AuthSessionRepository) GetByID(ctx context.Context, id string) (*models.AuthSession, error) {
	query := `
		SELECT id, user_id, created_at, expires_at, revoked_at
		FROM auth_sessions
		WHERE id = $1
	`
	var session models.AuthSession
	err := r.db.QueryRow(ctx, query, id).Scan(
		&session.ID,
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
		&session.RevokedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Revoke is idempotent; revoking an already revoked session keeps the first timestamp.
func (r *AuthSessionRepository) Revoke(ctx context.Context, id string, at time.Time) error {
	query := `UPDATE auth_sessions SET revoked_at = COALESCE(revoked_at, $2) WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id, at)
	return err
}

func (r *AuthSessionRepository) RevokeAllForUser(ctx context.Context, userID int64, at time.Time) ([]string, error) {
	query := `
		UPDATE auth_sessions
		SET revoked_at = $2
		WHERE user_id = $1 AND revoked_at IS NULL
		RETURNING id
	`
	rows, err := r.db.Query(ctx, query, userID, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}
