package repository

import (
	"testing"
	"time"
)

func TestSampleWorkoutsScheduleConsecutiveDays(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	workouts := SampleWorkouts(7, now)
	if len(workouts) != 4 {
		t.Fatalf("expected 4 sample workouts, got %d", len(workouts))
	}
	seen := map[string]bool{}
	for i, w := range workouts {
		want := now.Add(time.Duration(i) * 24 * time.Hour)
		if !w.ScheduledDate.Equal(want) {
			t.Fatalf("workout %d scheduled %v, want %v", i, w.ScheduledDate, want)
		}
		if w.UserID != 7 {
			t.Fatalf("workout %d has user %d", i, w.UserID)
		}
		if seen[w.SeedKey] {
			t.Fatalf("duplicate seed key %q", w.SeedKey)
		}
		seen[w.SeedKey] = true
	}
	if workouts[0].Name != "Treino de Peito e Tríceps" || workouts[3].WorkoutType != "Funcional" {
		t.Fatalf("unexpected sample workouts: %+v", workouts)
	}
}

func TestSampleAssignmentsCycleCatalog(t *testing.T) {
	ids := []int64{10, 20, 30, 40}

	first := SampleAssignments(1, 0, ids)
	second := SampleAssignments(2, 1, ids)
	if len(first) != 3 || len(second) != 3 {
		t.Fatalf("expected 3 assignments each, got %d and %d", len(first), len(second))
	}

	wantFirst := []int64{10, 20, 30}
	wantSecond := []int64{40, 10, 20}
	for i := range first {
		if first[i].ExerciseID != wantFirst[i] {
			t.Fatalf("first[%d] exercise %d, want %d", i, first[i].ExerciseID, wantFirst[i])
		}
		if second[i].ExerciseID != wantSecond[i] {
			t.Fatalf("second[%d] exercise %d, want %d", i, second[i].ExerciseID, wantSecond[i])
		}
		if first[i].OrderPosition != i+1 || first[i].Sets != 3 || first[i].Reps != "8-12" || first[i].RestSeconds != 60 {
			t.Fatalf("unexpected assignment %+v", first[i])
		}
	}
}

func TestSampleAssignmentsEmptyCatalog(t *testing.T) {
	if got := SampleAssignments(1, 0, nil); got != nil {
		t.Fatalf("expected nil assignments for empty catalog, got %+v", got)
	}
}
