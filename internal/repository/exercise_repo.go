package repository

import (
	"context"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
)

type CreateExerciseInput struct {
	Name            string
	Description     string
	MuscleGroups    []string
	Equipment       []string
	DifficultyLevel string
}

type ExerciseRepository struct {
	db DBTX
}

func NewExerciseRepository(db DBTX) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM exercises`).Scan(&total)
	return total, err
}

// InsertIfMissing adds catalog entries, skipping names that already exist.
func (r *ExerciseRepository) InsertIfMissing(ctx context.Context, inputs []CreateExerciseInput) error {
	query := `
		INSERT INTO exercises (name, description, muscle_groups, equipment, difficulty_level)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO NOTHING
	`
	for _, input := range inputs {
		if _, err := r.db.Exec(ctx, query,
			input.Name,
			input.Description,
			input.MuscleGroups,
			input.Equipment,
			input.DifficultyLevel,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *ExerciseRepository) List(ctx context.Context, limit int) ([]models.Exercise, error) {
	query := `
		SELECT id, name, description, muscle_groups, equipment, difficulty_level,
			   instructions, image_url, video_url
		FROM exercises
		ORDER BY id ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := make([]models.Exercise, 0)
	for rows.Next() {
		var exercise models.Exercise
		if err := rows.Scan(
			&exercise.ID,
			&exercise.Name,
			&exercise.Description,
			&exercise.MuscleGroups,
			&exercise.Equipment,
			&exercise.DifficultyLevel,
			&exercise.Instructions,
			&exercise.ImageURL,
			&exercise.VideoURL,
		); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exercises, nil
}
