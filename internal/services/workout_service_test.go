package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/jackc/pgx/v5"
)

type stubWorkoutStore struct {
	workouts      []models.Workout
	listErr       error
	listCalls     int
	completeErr   error
	lastCompleted int64
	lastAt        time.Time
}

func (s *stubWorkoutStore) ListByUserID(_ context.Context, _ int64) ([]models.Workout, error) {
	s.listCalls++
	return s.workouts, s.listErr
}

func (s *stubWorkoutStore) GetByID(_ context.Context, _ int64, workoutID int64) (*models.Workout, error) {
	for i := range s.workouts {
		if s.workouts[i].ID == workoutID {
			return &s.workouts[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubWorkoutStore) MarkCompleted(_ context.Context, _ int64, workoutID int64, at time.Time) (*models.Workout, error) {
	s.lastCompleted = workoutID
	s.lastAt = at
	if s.completeErr != nil {
		return nil, s.completeErr
	}
	return &models.Workout{ID: workoutID, Completed: true, CompletedAt: &at}, nil
}

func TestWorkoutListDerivesStats(t *testing.T) {
	store := &stubWorkoutStore{workouts: []models.Workout{
		{ID: 1, Name: "A", Completed: true},
		{ID: 2, Name: "B", Completed: true},
		{ID: 3, Name: "C", Completed: false},
		{ID: 4, Name: "D", Completed: true},
		{ID: 5, Name: "E", Completed: false},
	}}
	service := NewWorkoutService(nil, store)

	overview, err := service.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if overview.Stats.TotalWorkouts != 5 || overview.Stats.CompletedWorkouts != 3 {
		t.Fatalf("unexpected stats %+v", overview.Stats)
	}
	if overview.Stats.GoalsAchieved != 2 {
		t.Fatalf("expected floor(3*0.67)=2 goals, got %d", overview.Stats.GoalsAchieved)
	}
	if overview.NextWorkout == nil || overview.NextWorkout.ID != 3 {
		t.Fatalf("expected next workout 3, got %+v", overview.NextWorkout)
	}
	if store.listCalls != 1 {
		t.Fatalf("expected a single list call, got %d", store.listCalls)
	}
}

func TestWorkoutListAllCompletedHasNoNext(t *testing.T) {
	store := &stubWorkoutStore{workouts: []models.Workout{
		{ID: 1, Completed: true},
		{ID: 2, Completed: true},
	}}
	overview, err := NewWorkoutService(nil, store).List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if overview.NextWorkout != nil {
		t.Fatalf("expected no next workout, got %+v", overview.NextWorkout)
	}
	if overview.Stats.GoalsAchieved != 1 {
		t.Fatalf("expected floor(2*0.67)=1, got %d", overview.Stats.GoalsAchieved)
	}
}

func TestWorkoutListEmptyWithoutDatabase(t *testing.T) {
	store := &stubWorkoutStore{}
	overview, err := NewWorkoutService(nil, store).List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if overview.Workouts == nil || len(overview.Workouts) != 0 || overview.NextWorkout != nil {
		t.Fatalf("expected empty overview, got %+v", overview)
	}
}

func TestWorkoutListPropagatesErrors(t *testing.T) {
	store := &stubWorkoutStore{listErr: errors.New("boom")}
	if _, err := NewWorkoutService(nil, store).List(context.Background(), 1); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWorkoutComplete(t *testing.T) {
	store := &stubWorkoutStore{}
	service := NewWorkoutService(nil, store)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	workout, err := service.Complete(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if !workout.Completed || store.lastCompleted != 7 || !store.lastAt.Equal(fixed) {
		t.Fatalf("unexpected completion %+v at %v", workout, store.lastAt)
	}

	if _, err := service.Complete(context.Background(), 1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	store.completeErr = pgx.ErrNoRows
	if _, err := service.Complete(context.Background(), 1, 99); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
}
