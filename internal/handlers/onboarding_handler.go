package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/middleware"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/onboarding"
	"github.com/gofiber/fiber/v2"
)

type wizardStore interface {
	Start(userID int64) (*onboarding.Wizard, bool)
	Get(userID int64) (*onboarding.Wizard, bool)
	Discard(userID int64)
}

type OnboardingHandler struct {
	wizards wizardStore
	writer  onboarding.ProfileWriter
	now     func() time.Time
}

func NewOnboardingHandler(wizards wizardStore, writer onboarding.ProfileWriter) *OnboardingHandler {
	return &OnboardingHandler{
		wizards: wizards,
		writer:  writer,
		now:     time.Now,
	}
}

func (h *OnboardingHandler) Start(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	wizard, created := h.wizards.Start(identity.UserID)
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"state": wizard.State()})
}

func (h *OnboardingHandler) GetState(c *fiber.Ctx) error {
	wizard, err := h.currentWizard(c)
	if wizard == nil {
		return err
	}
	return c.JSON(fiber.Map{"state": wizard.State()})
}

func (h *OnboardingHandler) Update(c *fiber.Ctx) error {
	wizard, err := h.currentWizard(c)
	if wizard == nil {
		return err
	}

	var patch onboarding.Patch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	state, err := wizard.Update(patch)
	if err != nil {
		return mapOnboardingError(c, err, &state)
	}
	return c.JSON(fiber.Map{"state": state})
}

func (h *OnboardingHandler) Next(c *fiber.Ctx) error {
	wizard, err := h.currentWizard(c)
	if wizard == nil {
		return err
	}

	state, err := wizard.Next()
	if err != nil {
		return mapOnboardingError(c, err, &state)
	}
	return c.JSON(fiber.Map{"state": state})
}

func (h *OnboardingHandler) Previous(c *fiber.Ctx) error {
	wizard, err := h.currentWizard(c)
	if wizard == nil {
		return err
	}
	return c.JSON(fiber.Map{"state": wizard.Previous()})
}

func (h *OnboardingHandler) Confirm(c *fiber.Ctx) error {
	wizard, err := h.currentWizard(c)
	if wizard == nil {
		return err
	}

	profile, err := wizard.Confirm(c.Context(), h.writer)
	if err != nil {
		state := wizard.State()
		return mapOnboardingError(c, err, &state)
	}
	h.wizards.Discard(wizard.UserID())

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete(),
	})
}

func (h *OnboardingHandler) Abandon(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	h.wizards.Discard(identity.UserID)
	return c.SendStatus(fiber.StatusNoContent)
}

// Complete persists a whole draft kept by the client in one request.
func (h *OnboardingHandler) Complete(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var draft onboarding.Draft
	if err := c.BodyParser(&draft); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	profile, err := onboarding.Complete(c.Context(), h.writer, identity.UserID, draft, h.now())
	if err != nil {
		return mapOnboardingError(c, err, nil)
	}
	h.wizards.Discard(identity.UserID)

	return c.JSON(fiber.Map{
		"profile":             profile,
		"onboarding_complete": profile.OnboardingComplete(),
	})
}

func (h *OnboardingHandler) currentWizard(c *fiber.Ctx) (*onboarding.Wizard, error) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	wizard, ok := h.wizards.Get(identity.UserID)
	if !ok {
		return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Onboarding not started"})
	}
	return wizard, nil
}

func mapOnboardingError(c *fiber.Ctx, err error, state *onboarding.State) error {
	body := fiber.Map{"error": err.Error()}
	if state != nil {
		body["state"] = state
	}

	switch {
	case errors.Is(err, onboarding.ErrIncompleteStep), errors.Is(err, onboarding.ErrInvalidValue):
		return c.Status(fiber.StatusBadRequest).JSON(body)
	case errors.Is(err, onboarding.ErrFinalStep), errors.Is(err, onboarding.ErrNotOnSummary):
		return c.Status(fiber.StatusConflict).JSON(body)
	case errors.Is(err, onboarding.ErrClosed):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "Onboarding session is closed"})
	default:
		log.Printf("onboarding: %v", err)
		failure := fiber.Map{"error": "Failed to save onboarding"}
		if state != nil {
			failure["state"] = state
		}
		return c.Status(fiber.StatusInternalServerError).JSON(failure)
	}
}
