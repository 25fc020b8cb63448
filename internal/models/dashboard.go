package models

type Dashboard struct {
	FirstName          string       `json:"first_name"`
	NextWorkout        *Workout     `json:"next_workout"`
	Stats              WorkoutStats `json:"stats"`
	OnboardingComplete bool         `json:"onboarding_complete"`
}
