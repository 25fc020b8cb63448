package handlers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/middleware"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/onboarding"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/repository"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/services"
	"github.com/gofiber/fiber/v2"
)

type profileStore interface {
	Get(ctx context.Context, userID int64) (*models.UserProfile, error)
	Save(ctx context.Context, userID int64, req repository.UpdateUserProfileInput) (*models.UserProfile, error)
}

type avatarManager interface {
	Upload(ctx context.Context, userID int64, upload services.AvatarUpload) (*models.Avatar, error)
	Get(ctx context.Context, userID int64) (*models.Avatar, error)
	Remove(ctx context.Context, userID int64) error
}

type ProfileHandler struct {
	profiles profileStore
	avatars  avatarManager
	now      func() time.Time
}

func NewProfileHandler(profiles profileStore, avatars avatarManager) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		avatars:  avatars,
		now:      time.Now,
	}
}

type updateUserProfileRequest struct {
	FullName           *string `json:"nome_completo"`
	Sex                *string `json:"sexo"`
	BirthDate          *string `json:"data_nascimento"`
	Goal               *string `json:"objetivo"`
	ExperienceLevel    *string `json:"nivel_experiencia"`
	TrainingFrequency  *string `json:"frequencia_treino"`
	Restrictions       *string `json:"restricoes"`
	AvailableTime      *string `json:"tempo_disponivel"`
	TrainingPreference *string `json:"preferencias_treino"`
	TrainingLocation   *string `json:"local_treino"`
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	profile, err := h.profiles.Get(c.Context(), identity.UserID)
	if err != nil {
		log.Printf("profile: fetch for user %d: %v", identity.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"email":               identity.Email,
		"onboarding_complete": profile.OnboardingComplete(),
	})
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req updateUserProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if validationErr := validateUserProfileUpdateRequest(req, h.now()); validationErr != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr})
	}

	input := repository.UpdateUserProfileInput{
		FullName:           trimmed(req.FullName),
		Sex:                trimmed(req.Sex),
		Goal:               trimmed(req.Goal),
		ExperienceLevel:    trimmed(req.ExperienceLevel),
		TrainingFrequency:  trimmed(req.TrainingFrequency),
		Restrictions:       req.Restrictions,
		AvailableTime:      req.AvailableTime,
		TrainingPreference: req.TrainingPreference,
		TrainingLocation:   trimmed(req.TrainingLocation),
	}
	if req.BirthDate != nil {
		birth, _ := time.Parse(onboarding.BirthDateLayout, strings.TrimSpace(*req.BirthDate))
		input.BirthDate = &birth
	}

	profile, err := h.profiles.Save(c.Context(), identity.UserID, input)
	if err != nil {
		log.Printf("profile: save for user %d: %v", identity.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete(),
	})
}

func (h *ProfileHandler) GetAvatar(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	avatar, err := h.avatars.Get(c.Context(), identity.UserID)
	if err != nil {
		return mapAvatarError(c, err)
	}
	if avatar == nil {
		return c.JSON(fiber.Map{"avatar_url": nil})
	}
	return c.JSON(fiber.Map{"avatar_url": avatar.AvatarURL, "avatar": avatar})
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is required"})
	}
	if fileHeader.Size <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is empty"})
	}
	if fileHeader.Size > services.MaxAvatarSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file exceeds 5MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to open avatar file"})
	}
	defer file.Close()

	avatar, err := h.avatars.Upload(c.Context(), identity.UserID, services.AvatarUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		return mapAvatarError(c, err)
	}

	return c.JSON(fiber.Map{
		"avatar_url": avatar.AvatarURL,
		"avatar":     avatar,
	})
}

func (h *ProfileHandler) DeleteAvatar(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	if err := h.avatars.Remove(c.Context(), identity.UserID); err != nil {
		return mapAvatarError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func mapAvatarError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyAvatar):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file is empty"})
	case errors.Is(err, services.ErrAvatarTooLarge):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file exceeds 5MB limit"})
	case errors.Is(err, services.ErrInvalidAvatarType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar must be an image"})
	case errors.Is(err, services.ErrStorageUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Storage service is not configured"})
	case errors.Is(err, services.ErrAvatarUpload):
		log.Printf("avatar: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to upload avatar"})
	default:
		log.Printf("avatar: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to process avatar request"})
	}
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	return &out
}
