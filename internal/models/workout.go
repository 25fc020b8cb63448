package models

import "time"

type Exercise struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	MuscleGroups    []string `json:"muscle_groups"`
	Equipment       []string `json:"equipment"`
	DifficultyLevel *string  `json:"difficulty_level"`
	Instructions    *string  `json:"instructions,omitempty"`
	ImageURL        *string  `json:"image_url,omitempty"`
	VideoURL        *string  `json:"video_url,omitempty"`
}

// WorkoutExercise is an exercise assignment with the catalog entry joined in.
type WorkoutExercise struct {
	ID            int64    `json:"id"`
	WorkoutID     int64    `json:"workout_id"`
	Exercise      Exercise `json:"exercise"`
	Sets          *int     `json:"sets"`
	Reps          *string  `json:"reps"`
	WeightKG      *float64 `json:"weight_kg"`
	RestSeconds   *int     `json:"rest_seconds"`
	OrderPosition int      `json:"order_position"`
	Notes         *string  `json:"notes,omitempty"`
}

type Workout struct {
	ID                int64             `json:"id"`
	UserID            int64             `json:"user_id"`
	Name              string            `json:"name"`
	Description       *string           `json:"description"`
	EstimatedDuration *int              `json:"estimated_duration"`
	DifficultyLevel   *string           `json:"difficulty_level"`
	WorkoutType       *string           `json:"workout_type"`
	ScheduledDate     *time.Time        `json:"scheduled_date"`
	Completed         bool              `json:"completed"`
	CompletedAt       *time.Time        `json:"completed_at"`
	Exercises         []WorkoutExercise `json:"exercises"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

type WorkoutStats struct {
	TotalWorkouts     int `json:"total_workouts"`
	CompletedWorkouts int `json:"completed_workouts"`
	// GoalsAchieved is a placeholder heuristic; there is no goal tracking behind it.
	GoalsAchieved int `json:"goals_achieved"`
}

type WorkoutOverview struct {
	Workouts    []Workout    `json:"workouts"`
	NextWorkout *Workout     `json:"next_workout"`
	Stats       WorkoutStats `json:"stats"`
}
