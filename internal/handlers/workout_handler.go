package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/middleware"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type workoutApplicationService interface {
	List(ctx context.Context, userID int64) (*models.WorkoutOverview, error)
	Get(ctx context.Context, userID, workoutID int64) (*models.Workout, error)
	Complete(ctx context.Context, userID, workoutID int64) (*models.Workout, error)
}

type WorkoutHandler struct {
	service workoutApplicationService
}

func NewWorkoutHandler(service workoutApplicationService) *WorkoutHandler {
	return &WorkoutHandler{service: service}
}

func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	overview, err := h.service.List(c.Context(), identity.UserID)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return c.JSON(overview)
}

func (h *WorkoutHandler) GetWorkout(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	workout, err := h.service.Get(c.Context(), identity.UserID, workoutID)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return c.JSON(fiber.Map{"workout": workout})
}

func (h *WorkoutHandler) CompleteWorkout(c *fiber.Ctx) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	workoutID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || workoutID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid workout id"})
	}

	workout, err := h.service.Complete(c.Context(), identity.UserID, workoutID)
	if err != nil {
		return mapWorkoutError(c, err)
	}
	return c.JSON(fiber.Map{"workout": workout})
}

func mapWorkoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Workout not found"})
	default:
		log.Printf("workouts: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load workouts"})
	}
}
