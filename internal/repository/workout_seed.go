package repository

import "time"

const (
	sampleSets        = 3
	sampleReps        = "8-12"
	sampleRestSeconds = 60
	samplesPerWorkout = 3
)

// SampleCatalogLimit bounds how many catalog exercises seeding cycles through.
const SampleCatalogLimit = 8

// SampleExercises is the starter catalog inserted before the first workouts
// are seeded.
func SampleExercises() []CreateExerciseInput {
	bodyweight := []string{"peso corporal"}
	return []CreateExerciseInput{
		{
			Name:            "Flexão de Braço",
			Description:     "Exercício para peitoral, ombros e tríceps",
			MuscleGroups:    []string{"peitoral", "tríceps"},
			Equipment:       bodyweight,
			DifficultyLevel: "beginner",
		},
		{
			Name:            "Agachamento",
			Description:     "Exercício fundamental para membros inferiores",
			MuscleGroups:    []string{"quadríceps", "glúteos"},
			Equipment:       bodyweight,
			DifficultyLevel: "beginner",
		},
		{
			Name:            "Prancha",
			Description:     "Exercício isométrico para o core",
			MuscleGroups:    []string{"abdômen"},
			Equipment:       bodyweight,
			DifficultyLevel: "beginner",
		},
		{
			Name:            "Burpee",
			Description:     "Exercício completo de alta intensidade",
			MuscleGroups:    []string{"corpo todo"},
			Equipment:       bodyweight,
			DifficultyLevel: "intermediate",
		},
	}
}

// SampleWorkouts returns the four starter workouts for userID, scheduled on
// consecutive days from now.
func SampleWorkouts(userID int64, now time.Time) []CreateWorkoutInput {
	day := 24 * time.Hour
	return []CreateWorkoutInput{
		{
			UserID:            userID,
			Name:              "Treino de Peito e Tríceps",
			Description:       "Treino focado no desenvolvimento do peitoral e tríceps",
			EstimatedDuration: 45,
			DifficultyLevel:   "intermediate",
			WorkoutType:       "Força",
			ScheduledDate:     now,
			SeedKey:           "sample-1",
		},
		{
			UserID:            userID,
			Name:              "Treino de Costas e Bíceps",
			Description:       "Treino para fortalecer as costas e bíceps",
			EstimatedDuration: 50,
			DifficultyLevel:   "intermediate",
			WorkoutType:       "Força",
			ScheduledDate:     now.Add(day),
			SeedKey:           "sample-2",
		},
		{
			UserID:            userID,
			Name:              "Treino de Pernas",
			Description:       "Treino completo para membros inferiores",
			EstimatedDuration: 60,
			DifficultyLevel:   "intermediate",
			WorkoutType:       "Força",
			ScheduledDate:     now.Add(2 * day),
			SeedKey:           "sample-3",
		},
		{
			UserID:            userID,
			Name:              "Treino Funcional",
			Description:       "Treino funcional para corpo todo",
			EstimatedDuration: 40,
			DifficultyLevel:   "beginner",
			WorkoutType:       "Funcional",
			ScheduledDate:     now.Add(3 * day),
			SeedKey:           "sample-4",
		},
	}
}

// SampleAssignments picks samplesPerWorkout exercises for the workout at
// position workoutIndex, cycling through the catalog.
func SampleAssignments(workoutID int64, workoutIndex int, exerciseIDs []int64) []AssignExerciseInput {
	if len(exerciseIDs) == 0 {
		return nil
	}
	out := make([]AssignExerciseInput, 0, samplesPerWorkout)
	for i := 0; i < samplesPerWorkout; i++ {
		out = append(out, AssignExerciseInput{
			WorkoutID:     workoutID,
			ExerciseID:    exerciseIDs[(workoutIndex*samplesPerWorkout+i)%len(exerciseIDs)],
			Sets:          sampleSets,
			Reps:          sampleReps,
			RestSeconds:   sampleRestSeconds,
			OrderPosition: i + 1,
		})
	}
	return out
}
