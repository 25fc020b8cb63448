package handlers

import (
	"strings"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/onboarding"
)

func validateUserProfileUpdateRequest(req updateUserProfileRequest, now time.Time) string {
	if req.Sex != nil {
		if _, err := models.ParseSex(*req.Sex); err != nil {
			return err.Error()
		}
	}
	if req.BirthDate != nil {
		if err := validateBirthDate(*req.BirthDate, now); err != "" {
			return err
		}
	}
	if req.Goal != nil {
		if _, err := models.ParseGoal(*req.Goal); err != nil {
			return err.Error()
		}
	}
	if req.ExperienceLevel != nil {
		if _, err := models.ParseExperience(*req.ExperienceLevel); err != nil {
			return err.Error()
		}
	}
	if req.TrainingFrequency != nil {
		if _, err := models.ParseFrequency(*req.TrainingFrequency); err != nil {
			return err.Error()
		}
	}
	if req.TrainingLocation != nil {
		if _, err := models.ParseLocation(*req.TrainingLocation); err != nil {
			return err.Error()
		}
	}
	return ""
}

func validateBirthDate(value string, now time.Time) string {
	birth, err := time.Parse(onboarding.BirthDateLayout, strings.TrimSpace(value))
	if err != nil {
		return "data_nascimento must use YYYY-MM-DD"
	}
	if age := onboarding.AgeOn(birth, now); age < onboarding.MinAge || age > onboarding.MaxAge {
		return "data_nascimento must give an age between 13 and 100"
	}
	return ""
}
