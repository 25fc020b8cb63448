package repository

import (
	"context"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/jackc/pgx/v5"
)

const userProfileColumns = `id, user_id, nome_completo, sexo, data_nascimento, objetivo, nivel_experiencia,
		frequencia_treino, restricoes, tempo_disponivel, preferencias_treino, local_treino,
		data_onboarding, created_at, updated_at`

type UserProfileRepository struct {
	db DBTX
}

func NewUserProfileRepository(db DBTX) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

// EnsureExists inserts an empty row for the user unless one is already there.
func (r *UserProfileRepository) EnsureExists(ctx context.Context, userID int64) error {
	query := `INSERT INTO user_profiles (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profiles WHERE user_id = $1`
	return scanUserProfile(r.db.QueryRow(ctx, query, userID))
}

// Upsert writes the non-nil fields of req, keeping stored values for the rest.
// The first save also stamps data_onboarding when it was never set.
func (r *UserProfileRepository) Upsert(ctx context.Context, userID int64, req UpdateUserProfileInput) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (
			user_id, nome_completo, sexo, data_nascimento, objetivo, nivel_experiencia,
			frequencia_treino, restricoes, tempo_disponivel, preferencias_treino, local_treino,
			data_onboarding, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET nome_completo = COALESCE(EXCLUDED.nome_completo, user_profiles.nome_completo),
			sexo = COALESCE(EXCLUDED.sexo, user_profiles.sexo),
			data_nascimento = COALESCE(EXCLUDED.data_nascimento, user_profiles.data_nascimento),
			objetivo = COALESCE(EXCLUDED.objetivo, user_profiles.objetivo),
			nivel_experiencia = COALESCE(EXCLUDED.nivel_experiencia, user_profiles.nivel_experiencia),
			frequencia_treino = COALESCE(EXCLUDED.frequencia_treino, user_profiles.frequencia_treino),
			restricoes = COALESCE(EXCLUDED.restricoes, user_profiles.restricoes),
			tempo_disponivel = COALESCE(EXCLUDED.tempo_disponivel, user_profiles.tempo_disponivel),
			preferencias_treino = COALESCE(EXCLUDED.preferencias_treino, user_profiles.preferencias_treino),
			local_treino = COALESCE(EXCLUDED.local_treino, user_profiles.local_treino),
			data_onboarding = COALESCE(user_profiles.data_onboarding, EXCLUDED.data_onboarding),
			updated_at = NOW()
		RETURNING ` + userProfileColumns
	return scanUserProfile(r.db.QueryRow(ctx, query,
		userID,
		req.FullName,
		req.Sex,
		req.BirthDate,
		req.Goal,
		req.ExperienceLevel,
		req.TrainingFrequency,
		req.Restrictions,
		req.AvailableTime,
		req.TrainingPreference,
		req.TrainingLocation,
	))
}

// UpsertOnboarding writes the whole onboarding result in one statement and
// stamps data_onboarding with the completion time.
func (r *UserProfileRepository) UpsertOnboarding(ctx context.Context, userID int64, req UserOnboardingInput) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (
			user_id, nome_completo, sexo, data_nascimento, objetivo, nivel_experiencia,
			frequencia_treino, restricoes, tempo_disponivel, preferencias_treino, local_treino,
			data_onboarding, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET nome_completo = EXCLUDED.nome_completo,
			sexo = EXCLUDED.sexo,
			data_nascimento = EXCLUDED.data_nascimento,
			objetivo = EXCLUDED.objetivo,
			nivel_experiencia = EXCLUDED.nivel_experiencia,
			frequencia_treino = EXCLUDED.frequencia_treino,
			restricoes = EXCLUDED.restricoes,
			tempo_disponivel = EXCLUDED.tempo_disponivel,
			preferencias_treino = EXCLUDED.preferencias_treino,
			local_treino = EXCLUDED.local_treino,
			data_onboarding = EXCLUDED.data_onboarding,
			updated_at = NOW()
		RETURNING ` + userProfileColumns
	return scanUserProfile(r.db.QueryRow(ctx, query,
		userID,
		req.FullName,
		req.Sex,
		req.BirthDate,
		req.Goal,
		req.ExperienceLevel,
		req.TrainingFrequency,
		req.Restrictions,
		req.AvailableTime,
		req.TrainingPreference,
		req.TrainingLocation,
		req.CompletedAt,
	))
}

func scanUserProfile(row pgx.Row) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Sex,
		&profile.BirthDate,
		&profile.Goal,
		&profile.ExperienceLevel,
		&profile.TrainingFrequency,
		&profile.Restrictions,
		&profile.AvailableTime,
		&profile.TrainingPreference,
		&profile.TrainingLocation,
		&profile.OnboardedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

type UserOnboardingInput struct {
	FullName           string
	Sex                string
	BirthDate          time.Time
	Goal               string
	ExperienceLevel    string
	TrainingFrequency  string
	Restrictions       string
	AvailableTime      string
	TrainingPreference string
	TrainingLocation   string
	CompletedAt        time.Time
}

type UpdateUserProfileInput struct {
	FullName           *string
	Sex                *string
	BirthDate          *time.Time
	Goal               *string
	ExperienceLevel    *string
	TrainingFrequency  *string
	Restrictions       *string
	AvailableTime      *string
	TrainingPreference *string
	TrainingLocation   *string
}
