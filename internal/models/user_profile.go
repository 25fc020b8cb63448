package models

import "time"

// UserProfile mirrors a user_profiles row. Every preference column is
// nullable; a user without a row is served the zero value.
type UserProfile struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	FullName           *string    `json:"nome_completo"`
	Sex                *string    `json:"sexo"`
	BirthDate          *time.Time `json:"data_nascimento"`
	Goal               *string    `json:"objetivo"`
	ExperienceLevel    *string    `json:"nivel_experiencia"`
	TrainingFrequency  *string    `json:"frequencia_treino"`
	Restrictions       *string    `json:"restricoes"`
	AvailableTime      *string    `json:"tempo_disponivel"`
	TrainingPreference *string    `json:"preferencias_treino"`
	TrainingLocation   *string    `json:"local_treino"`
	OnboardedAt        *time.Time `json:"data_onboarding"`
	CreatedAt          *time.Time `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

func EmptyUserProfile(userID int64) *UserProfile {
	return &UserProfile{UserID: userID}
}

func (p *UserProfile) OnboardingComplete() bool {
	return p != nil && p.OnboardedAt != nil
}
