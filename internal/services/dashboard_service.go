package services

import (
	"context"
	"log"
	"strings"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
)

type profileReader interface {
	Get(ctx context.Context, userID int64) (*models.UserProfile, error)
}

type workoutLister interface {
	List(ctx context.Context, userID int64) (*models.WorkoutOverview, error)
}

type accountReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type DashboardService struct {
	profiles profileReader
	workouts workoutLister
	accounts accountReader
}

func NewDashboardService(profiles profileReader, workouts workoutLister, accounts accountReader) *DashboardService {
	return &DashboardService{
		profiles: profiles,
		workouts: workouts,
		accounts: accounts,
	}
}

// Build assembles the home screen. Each source that fails is logged and
// replaced by its empty default.
func (s *DashboardService) Build(ctx context.Context, identity *models.Identity) *models.Dashboard {
	dashboard := &models.Dashboard{}
	if identity == nil {
		return dashboard
	}

	profile, err := s.profiles.Get(ctx, identity.UserID)
	if err != nil {
		log.Printf("dashboard: fetch profile for user %d: %v", identity.UserID, err)
		profile = models.EmptyUserProfile(identity.UserID)
	}
	dashboard.OnboardingComplete = profile.OnboardingComplete()

	var account *models.User
	if s.accounts != nil {
		account, err = s.accounts.GetByID(ctx, identity.UserID)
		if err != nil {
			log.Printf("dashboard: fetch account for user %d: %v", identity.UserID, err)
			account = nil
		}
	}
	dashboard.FirstName = FirstName(profile, account, identity.Email)

	overview, err := s.workouts.List(ctx, identity.UserID)
	if err != nil {
		log.Printf("dashboard: fetch workouts for user %d: %v", identity.UserID, err)
		return dashboard
	}
	dashboard.NextWorkout = overview.NextWorkout
	dashboard.Stats = overview.Stats
	return dashboard
}

// FirstName picks the greeting name: the first word of the profile name,
// then of the account name, then the local part of the email.
func FirstName(profile *models.UserProfile, account *models.User, email string) string {
	if profile != nil && profile.FullName != nil {
		if fields := strings.Fields(*profile.FullName); len(fields) > 0 {
			return fields[0]
		}
	}
	if account != nil && account.Name != nil {
		if fields := strings.Fields(*account.Name); len(fields) > 0 {
			return fields[0]
		}
	}
	if account != nil && email == "" {
		email = account.Email
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
