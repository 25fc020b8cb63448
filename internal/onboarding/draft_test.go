package onboarding

import (
	"errors"
	"testing"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func completeDraft() Draft {
	return Draft{
		FullName:   "Ana Souza",
		Sex:        models.SexFemale,
		BirthDate:  "1990-05-20",
		Goal:       models.GoalWeightLoss,
		Experience: models.ExperienceBeginner,
		Frequency:  models.FrequencyLow,
		Location:   models.LocationHome,
	}
}

func TestValidatePersonalInfo(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr error
	}{
		{"complete", func(*Draft) {}, nil},
		{"blank name", func(d *Draft) { d.FullName = "   " }, ErrIncompleteStep},
		{"missing sex", func(d *Draft) { d.Sex = "" }, ErrIncompleteStep},
		{"missing birth date", func(d *Draft) { d.BirthDate = "" }, ErrIncompleteStep},
		{"bad birth date", func(d *Draft) { d.BirthDate = "20/05/1990" }, ErrInvalidValue},
		{"too young", func(d *Draft) { d.BirthDate = "2011-06-16" }, ErrIncompleteStep},
		{"just thirteen", func(d *Draft) { d.BirthDate = "2011-06-15" }, nil},
		{"too old", func(d *Draft) { d.BirthDate = "1923-06-14" }, ErrIncompleteStep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := completeDraft()
			tt.mutate(&draft)
			err := draft.ValidateStep(StepPersonalInfo, fixedNow)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateOptionalSteps(t *testing.T) {
	draft := Draft{}
	for _, step := range []Step{StepEquipment, StepRestrictions, StepSummary} {
		if err := draft.ValidateStep(step, fixedNow); err != nil {
			t.Fatalf("step %s should never block, got %v", step, err)
		}
	}
	for _, step := range []Step{StepGoal, StepExperience, StepFrequency, StepLocation} {
		if err := draft.ValidateStep(step, fixedNow); !errors.Is(err, ErrIncompleteStep) {
			t.Fatalf("step %s should require a selection, got %v", step, err)
		}
	}
}

func TestToggleEquipment(t *testing.T) {
	draft := Draft{}
	draft.ToggleEquipment(models.EquipmentDumbbells)
	draft.ToggleEquipment(models.EquipmentYogaMat)
	assertEquipment(t, draft.Equipment, models.EquipmentDumbbells, models.EquipmentYogaMat)

	draft.ToggleEquipment(models.EquipmentDumbbells)
	assertEquipment(t, draft.Equipment, models.EquipmentYogaMat)

	draft.ToggleEquipment(models.EquipmentNone)
	assertEquipment(t, draft.Equipment, models.EquipmentNone)

	draft.ToggleEquipment(models.EquipmentBench)
	assertEquipment(t, draft.Equipment, models.EquipmentBench)
}

func TestPatchRejectsMixedNone(t *testing.T) {
	mixed := []models.Equipment{models.EquipmentNone, models.EquipmentBench}
	if err := (Patch{Equipment: &mixed}).validate(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	unknown := models.Goal("bulk")
	if err := (Patch{Goal: &unknown}).validate(); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for unknown goal, got %v", err)
	}
}

func TestOnboardingInputDerivesFields(t *testing.T) {
	draft := completeDraft()
	draft.Frequency = models.FrequencyMedium
	draft.Equipment = []models.Equipment{models.EquipmentDumbbells, models.EquipmentYogaMat}
	draft.Restrictions = "  dor no joelho "

	input, err := draft.OnboardingInput(fixedNow)
	if err != nil {
		t.Fatalf("OnboardingInput returned error: %v", err)
	}
	if input.AvailableTime != "45" {
		t.Fatalf("expected 45 minutes for 4-5, got %q", input.AvailableTime)
	}
	if input.TrainingPreference != "Halteres, Tapete de yoga" {
		t.Fatalf("unexpected preference %q", input.TrainingPreference)
	}
	if input.Restrictions != "dor no joelho" || !input.CompletedAt.Equal(fixedNow) {
		t.Fatalf("unexpected input %+v", input)
	}
	if !input.BirthDate.Equal(time.Date(1990, 5, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected birth date %v", input.BirthDate)
	}
}

func TestOnboardingInputRejectsIncompleteDraft(t *testing.T) {
	draft := completeDraft()
	draft.Location = ""
	if _, err := draft.OnboardingInput(fixedNow); !errors.Is(err, ErrIncompleteStep) {
		t.Fatalf("expected ErrIncompleteStep, got %v", err)
	}
	step, _ := draft.Validate(fixedNow)
	if step != StepLocation {
		t.Fatalf("expected first incomplete step to be location, got %s", step)
	}
}

func assertEquipment(t *testing.T, got []models.Equipment, want ...models.Equipment) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected equipment %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected equipment %v, got %v", want, got)
		}
	}
}
