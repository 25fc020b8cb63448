package services

import (
	"context"
	"errors"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/repository"
	"github.com/jackc/pgx/v5"
)

type userProfileStore interface {
	EnsureExists(ctx context.Context, userID int64) error
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	Upsert(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error)
	UpsertOnboarding(ctx context.Context, userID int64, req repository.UserOnboardingInput) (*models.UserProfile, error)
}

type ProfileService struct {
	userProfileRepo userProfileStore
}

func NewProfileService(userProfileRepo userProfileStore) *ProfileService {
	return &ProfileService{userProfileRepo: userProfileRepo}
}

// Get never reports a missing profile. A user without a row gets one
// inserted and is served an empty profile.
func (s *ProfileService) Get(ctx context.Context, userID int64) (*models.UserProfile, error) {
	profile, err := s.userProfileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if err := s.userProfileRepo.EnsureExists(ctx, userID); err != nil {
		return nil, err
	}
	return models.EmptyUserProfile(userID), nil
}

func (s *ProfileService) Save(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.userProfileRepo.Upsert(ctx, userID, req)
}

func (s *ProfileService) CompleteOnboarding(ctx context.Context, userID int64, req repository.UserOnboardingInput) (*models.UserProfile, error) {
	if userID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.userProfileRepo.UpsertOnboarding(ctx, userID, req)
}
