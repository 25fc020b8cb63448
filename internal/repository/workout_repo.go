package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/jackc/pgx/v5"
)

const workoutColumns = `id, user_id, name, description, estimated_duration, difficulty_level,
		workout_type, scheduled_date, completed, completed_at, created_at, updated_at`

type CreateWorkoutInput struct {
	UserID            int64
	Name              string
	Description       string
	EstimatedDuration int
	DifficultyLevel   string
	WorkoutType       string
	ScheduledDate     time.Time
	SeedKey           string
}

type AssignExerciseInput struct {
	WorkoutID     int64
	ExerciseID    int64
	Sets          int
	Reps          string
	RestSeconds   int
	OrderPosition int
}

type WorkoutRepository struct {
	db DBTX
}

func NewWorkoutRepository(db DBTX) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) CountByUserID(ctx context.Context, userID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM user_workouts WHERE user_id = $1`, userID).Scan(&total)
	return total, err
}

// ListByUserID returns the user's workouts ordered by schedule, each with its
// exercise assignments (ordered by position) and catalog details.
func (r *WorkoutRepository) ListByUserID(ctx context.Context, userID int64) ([]models.Workout, error) {
	query := `
		SELECT ` + workoutColumns + `
		FROM user_workouts
		WHERE user_id = $1
		ORDER BY scheduled_date ASC NULLS LAST, id ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]models.Workout, 0)
	for rows.Next() {
		workout, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		workouts = append(workouts, *workout)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return workouts, nil
	}

	if err := r.attachExercises(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *WorkoutRepository) GetByID(ctx context.Context, userID, workoutID int64) (*models.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM user_workouts WHERE id = $1 AND user_id = $2`
	workout, err := scanWorkout(r.db.QueryRow(ctx, query, workoutID, userID))
	if err != nil {
		return nil, err
	}
	workouts := []models.Workout{*workout}
	if err := r.attachExercises(ctx, workouts); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

func (r *WorkoutRepository) MarkCompleted(ctx context.Context, userID, workoutID int64, at time.Time) (*models.Workout, error) {
	query := `
		UPDATE user_workouts
		SET completed = TRUE,
			completed_at = COALESCE(completed_at, $3),
			updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + workoutColumns
	workout, err := scanWorkout(r.db.QueryRow(ctx, query, workoutID, userID, at))
	if err != nil {
		return nil, err
	}
	workouts := []models.Workout{*workout}
	if err := r.attachExercises(ctx, workouts); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

// CreateIfMissing inserts a workout keyed by (user_id, seed_key). It reports
// false, with a nil workout, when the key already exists.
func (r *WorkoutRepository) CreateIfMissing(ctx context.Context, input CreateWorkoutInput) (*models.Workout, bool, error) {
	query := `
		INSERT INTO user_workouts (
			user_id, name, description, estimated_duration, difficulty_level,
			workout_type, scheduled_date, completed, seed_key
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
		ON CONFLICT (user_id, seed_key) DO NOTHING
		RETURNING ` + workoutColumns
	workout, err := scanWorkout(r.db.QueryRow(ctx, query,
		input.UserID,
		input.Name,
		input.Description,
		input.EstimatedDuration,
		input.DifficultyLevel,
		input.WorkoutType,
		input.ScheduledDate,
		input.SeedKey,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return workout, true, nil
}

func (r *WorkoutRepository) AssignExercise(ctx context.Context, input AssignExerciseInput) error {
	query := `
		INSERT INTO workout_exercises (workout_id, exercise_id, sets, reps, rest_seconds, order_position)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (workout_id, order_position) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query,
		input.WorkoutID,
		input.ExerciseID,
		input.Sets,
		input.Reps,
		input.RestSeconds,
		input.OrderPosition,
	)
	return err
}

func (r *WorkoutRepository) attachExercises(ctx context.Context, workouts []models.Workout) error {
	ids := make([]int64, 0, len(workouts))
	index := make(map[int64]int, len(workouts))
	for i := range workouts {
		ids = append(ids, workouts[i].ID)
		index[workouts[i].ID] = i
		workouts[i].Exercises = make([]models.WorkoutExercise, 0)
	}

	query := `
		SELECT we.id, we.workout_id, we.sets, we.reps, we.weight_kg::float8, we.rest_seconds,
			   we.order_position, we.notes,
			   e.id, e.name, e.description, e.muscle_groups, e.equipment, e.difficulty_level,
			   e.instructions, e.image_url, e.video_url
		FROM workout_exercises we
		JOIN exercises e ON e.id = we.exercise_id
		WHERE we.workout_id = ANY($1)
		ORDER BY we.workout_id ASC, we.order_position ASC
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.WorkoutExercise
		if err := rows.Scan(
			&item.ID,
			&item.WorkoutID,
			&item.Sets,
			&item.Reps,
			&item.WeightKG,
			&item.RestSeconds,
			&item.OrderPosition,
			&item.Notes,
			&item.Exercise.ID,
			&item.Exercise.Name,
			&item.Exercise.Description,
			&item.Exercise.MuscleGroups,
			&item.Exercise.Equipment,
			&item.Exercise.DifficultyLevel,
			&item.Exercise.Instructions,
			&item.Exercise.ImageURL,
			&item.Exercise.VideoURL,
		); err != nil {
			return err
		}
		i, ok := index[item.WorkoutID]
		if !ok {
			continue
		}
		workouts[i].Exercises = append(workouts[i].Exercises, item)
	}
	return rows.Err()
}

func scanWorkout(row pgx.Row) (*models.Workout, error) {
	var workout models.Workout
	err := row.Scan(
		&workout.ID,
		&workout.UserID,
		&workout.Name,
		&workout.Description,
		&workout.EstimatedDuration,
		&workout.DifficultyLevel,
		&workout.WorkoutType,
		&workout.ScheduledDate,
		&workout.Completed,
		&workout.CompletedAt,
		&workout.CreatedAt,
		&workout.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &workout, nil
}
