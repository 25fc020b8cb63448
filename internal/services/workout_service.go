package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/repository"
)

type workoutStore interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.Workout, error)
	GetByID(ctx context.Context, userID, workoutID int64) (*models.Workout, error)
	MarkCompleted(ctx context.Context, userID, workoutID int64, at time.Time) (*models.Workout, error)
}

type WorkoutService struct {
	db          repository.TxBeginner
	workoutRepo workoutStore
	now         func() time.Time
}

func NewWorkoutService(db repository.TxBeginner, workoutRepo workoutStore) *WorkoutService {
	return &WorkoutService{
		db:          db,
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

// List returns the user's workouts with derived stats. A user with no
// workouts gets the sample plan seeded first.
func (s *WorkoutService) List(ctx context.Context, userID int64) (*models.WorkoutOverview, error) {
	workouts, err := s.workoutRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(workouts) == 0 && s.db != nil {
		if err := s.seedSamples(ctx, userID); err != nil {
			return nil, fmt.Errorf("seed sample workouts: %w", err)
		}
		workouts, err = s.workoutRepo.ListByUserID(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	return buildOverview(workouts), nil
}

func (s *WorkoutService) Get(ctx context.Context, userID, workoutID int64) (*models.Workout, error) {
	if workoutID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.workoutRepo.GetByID(ctx, userID, workoutID)
}

// Complete marks a workout owned by userID as done. pgx.ErrNoRows means it
// does not exist or belongs to someone else.
func (s *WorkoutService) Complete(ctx context.Context, userID, workoutID int64) (*models.Workout, error) {
	if workoutID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.workoutRepo.MarkCompleted(ctx, userID, workoutID, s.now())
}

func (s *WorkoutService) seedSamples(ctx context.Context, userID int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", userID); err != nil {
		return err
	}

	txWorkoutRepo := repository.NewWorkoutRepository(tx)
	txExerciseRepo := repository.NewExerciseRepository(tx)

	existing, err := txWorkoutRepo.CountByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if existing > 0 {
		return tx.Commit(ctx)
	}

	catalogSize, err := txExerciseRepo.Count(ctx)
	if err != nil {
		return err
	}
	if catalogSize == 0 {
		if err := txExerciseRepo.InsertIfMissing(ctx, repository.SampleExercises()); err != nil {
			return err
		}
	}
	catalog, err := txExerciseRepo.List(ctx, repository.SampleCatalogLimit)
	if err != nil {
		return err
	}
	exerciseIDs := make([]int64, 0, len(catalog))
	for _, exercise := range catalog {
		exerciseIDs = append(exerciseIDs, exercise.ID)
	}

	for i, input := range repository.SampleWorkouts(userID, s.now()) {
		workout, created, err := txWorkoutRepo.CreateIfMissing(ctx, input)
		if err != nil {
			return err
		}
		if !created {
			continue
		}
		for _, assignment := range repository.SampleAssignments(workout.ID, i, exerciseIDs) {
			if err := txWorkoutRepo.AssignExercise(ctx, assignment); err != nil {
				return err
			}
		}
	}

	return tx.Commit(ctx)
}

func buildOverview(workouts []models.Workout) *models.WorkoutOverview {
	if workouts == nil {
		workouts = make([]models.Workout, 0)
	}
	overview := &models.WorkoutOverview{Workouts: workouts}
	for i := range workouts {
		if workouts[i].Completed {
			overview.Stats.CompletedWorkouts++
			continue
		}
		if overview.NextWorkout == nil {
			overview.NextWorkout = &workouts[i]
		}
	}
	overview.Stats.TotalWorkouts = len(workouts)
	overview.Stats.GoalsAchieved = overview.Stats.CompletedWorkouts * 67 / 100
	return overview
}
