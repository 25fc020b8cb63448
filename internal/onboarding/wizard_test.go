package onboarding

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/repository"
)

type stubProfileWriter struct {
	mu     sync.Mutex
	err    error
	calls  int
	last   repository.UserOnboardingInput
	userID int64
}

func (s *stubProfileWriter) CompleteOnboarding(_ context.Context, userID int64, req repository.UserOnboardingInput) (*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = req
	s.userID = userID
	if s.err != nil {
		return nil, s.err
	}
	return &models.UserProfile{UserID: userID, Goal: &req.Goal, OnboardedAt: &req.CompletedAt}, nil
}

func newTestWizard(delay time.Duration) *Wizard {
	w := NewWizard(42)
	w.now = func() time.Time { return fixedNow }
	w.delay = func(step Step) (time.Duration, bool) {
		if _, ok := autoAdvanceDelay(step); !ok {
			return 0, false
		}
		return delay, true
	}
	return w
}

func ptr[T any](value T) *T {
	return &value
}

func waitForStep(t *testing.T, w *Wizard, want Step) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if w.State().StepIndex == want.Index() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("wizard did not reach %s, still on %s", want, w.State().Step)
}

func TestNextRequiresValidStep(t *testing.T) {
	w := newTestWizard(time.Hour)

	state, err := w.Next()
	if !errors.Is(err, ErrIncompleteStep) {
		t.Fatalf("expected ErrIncompleteStep, got %v", err)
	}
	if state.StepIndex != 0 {
		t.Fatalf("expected to stay on step 0, got %d", state.StepIndex)
	}

	if _, err := w.Update(Patch{
		FullName:  ptr("Ana Souza"),
		Sex:       ptr(models.SexFemale),
		BirthDate: ptr("1990-05-20"),
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	state, err = w.Next()
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if state.StepIndex != 1 || state.Title != "Objetivo do Treino" || state.Step != "goal" {
		t.Fatalf("unexpected state %+v", state)
	}
	if state.TotalSteps != 8 || state.Progress != 25 {
		t.Fatalf("unexpected progress %d/%d", state.Progress, state.TotalSteps)
	}
}

func TestPreviousKeepsDraft(t *testing.T) {
	w := newTestWizard(time.Hour)
	if _, err := w.Update(Patch{
		FullName:  ptr("Ana Souza"),
		Sex:       ptr(models.SexFemale),
		BirthDate: ptr("1990-05-20"),
	}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if _, err := w.Next(); err != nil {
		t.Fatalf("Next returned error: %v", err)
	}

	state := w.Previous()
	if state.StepIndex != 0 || state.Draft.FullName != "Ana Souza" || state.Draft.BirthDate != "1990-05-20" {
		t.Fatalf("unexpected state after Previous %+v", state)
	}

	state = w.Previous()
	if state.StepIndex != 0 {
		t.Fatalf("Previous on the first step must be a no-op, got %d", state.StepIndex)
	}
}

func TestSelectionAutoAdvances(t *testing.T) {
	w := newTestWizard(10 * time.Millisecond)
	w.draft = completeDraft()
	w.draft.Goal = ""
	w.step = StepGoal

	if _, err := w.Update(Patch{Goal: ptr(models.GoalMass)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	waitForStep(t, w, StepExperience)
}

func TestNavigationCancelsAutoAdvance(t *testing.T) {
	w := newTestWizard(40 * time.Millisecond)
	w.draft = completeDraft()
	w.step = StepGoal

	if _, err := w.Update(Patch{Goal: ptr(models.GoalHealth)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	state := w.Previous()
	if state.StepIndex != StepPersonalInfo.Index() {
		t.Fatalf("expected Previous to move back, got %d", state.StepIndex)
	}

	time.Sleep(120 * time.Millisecond)
	if got := w.State().StepIndex; got != StepPersonalInfo.Index() {
		t.Fatalf("cancelled auto-advance moved the wizard to %d", got)
	}
}

func TestNewerSelectionReschedules(t *testing.T) {
	w := newTestWizard(40 * time.Millisecond)
	w.draft = completeDraft()
	w.step = StepLocation

	if _, err := w.Update(Patch{Location: ptr(models.LocationGym)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if _, err := w.Update(Patch{Location: ptr(models.LocationPark)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	waitForStep(t, w, StepEquipment)

	time.Sleep(80 * time.Millisecond)
	state := w.State()
	if state.StepIndex != StepEquipment.Index() {
		t.Fatalf("expected a single advance, wizard is on %s", state.Step)
	}
	if state.Draft.Location != models.LocationPark {
		t.Fatalf("expected latest selection to win, got %q", state.Draft.Location)
	}
}

func TestCloseCancelsAutoAdvance(t *testing.T) {
	w := newTestWizard(20 * time.Millisecond)
	w.draft = completeDraft()
	w.step = StepFrequency

	if _, err := w.Update(Patch{Frequency: ptr(models.FrequencyHigh)}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	w.Close()
	time.Sleep(80 * time.Millisecond)

	if got := w.State().StepIndex; got != StepFrequency.Index() {
		t.Fatalf("closed wizard advanced to %d", got)
	}
	if _, err := w.Next(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestEquipmentDefaultsToNone(t *testing.T) {
	w := newTestWizard(time.Hour)
	w.draft = completeDraft()
	w.step = StepEquipment

	state, err := w.Next()
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	if state.StepIndex != StepRestrictions.Index() {
		t.Fatalf("expected restrictions step, got %s", state.Step)
	}
	assertEquipment(t, state.Draft.Equipment, models.EquipmentNone)
}

func TestConfirmOnlyOnSummary(t *testing.T) {
	w := newTestWizard(time.Hour)
	w.draft = completeDraft()
	writer := &stubProfileWriter{}

	if _, err := w.Confirm(context.Background(), writer); !errors.Is(err, ErrNotOnSummary) {
		t.Fatalf("expected ErrNotOnSummary, got %v", err)
	}
	if writer.calls != 0 {
		t.Fatalf("expected no write")
	}
}

func TestConfirmFailureKeepsDraft(t *testing.T) {
	w := newTestWizard(time.Hour)
	w.draft = completeDraft()
	w.step = StepSummary
	writer := &stubProfileWriter{err: errors.New("network down")}

	if _, err := w.Confirm(context.Background(), writer); err == nil {
		t.Fatalf("expected write error")
	}
	state := w.State()
	if state.Step != "summary" || state.Draft.FullName != "Ana Souza" || state.Draft.Goal != models.GoalWeightLoss {
		t.Fatalf("draft was lost after failed confirm: %+v", state)
	}

	writer.err = nil
	if _, err := w.Confirm(context.Background(), writer); err != nil {
		t.Fatalf("retry returned error: %v", err)
	}
	if writer.calls != 2 {
		t.Fatalf("expected two write attempts, got %d", writer.calls)
	}
}

func TestWizardEndToEnd(t *testing.T) {
	w := newTestWizard(time.Hour)
	writer := &stubProfileWriter{}

	steps := []Patch{
		{FullName: ptr("Ana Souza"), Sex: ptr(models.SexFemale), BirthDate: ptr("1990-05-20")},
		{Goal: ptr(models.GoalWeightLoss)},
		{Experience: ptr(models.ExperienceBeginner)},
		{Frequency: ptr(models.FrequencyLow)},
		{Location: ptr(models.LocationHome)},
		{},
		{Restrictions: ptr("")},
	}
	for i, patch := range steps {
		if _, err := w.Update(patch); err != nil {
			t.Fatalf("step %d Update returned error: %v", i, err)
		}
		state, err := w.Next()
		if err != nil {
			t.Fatalf("step %d Next returned error: %v", i, err)
		}
		if state.StepIndex != i+1 {
			t.Fatalf("expected step %d, got %d", i+1, state.StepIndex)
		}
	}

	profile, err := w.Confirm(context.Background(), writer)
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if profile == nil || writer.userID != 42 {
		t.Fatalf("unexpected confirm result %+v for user %d", profile, writer.userID)
	}
	got := writer.last
	if got.Goal != "weight_loss" || got.AvailableTime != "60" || got.TrainingLocation != "home" {
		t.Fatalf("unexpected onboarding input %+v", got)
	}
	if got.TrainingPreference != "Nenhum equipamento" || got.Sex != "feminino" || got.TrainingFrequency != "2-3" {
		t.Fatalf("unexpected onboarding input %+v", got)
	}
	if !got.CompletedAt.Equal(fixedNow) {
		t.Fatalf("expected completion stamp %v, got %v", fixedNow, got.CompletedAt)
	}
}

func TestCompleteOneShot(t *testing.T) {
	writer := &stubProfileWriter{}
	if _, err := Complete(context.Background(), writer, 7, completeDraft(), fixedNow); err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if writer.calls != 1 || writer.userID != 7 {
		t.Fatalf("expected a single write for user 7, got %d for %d", writer.calls, writer.userID)
	}

	incomplete := completeDraft()
	incomplete.Goal = ""
	if _, err := Complete(context.Background(), writer, 7, incomplete, fixedNow); !errors.Is(err, ErrIncompleteStep) {
		t.Fatalf("expected ErrIncompleteStep, got %v", err)
	}
	if writer.calls != 1 {
		t.Fatalf("incomplete draft must not be written")
	}
}

func TestStepProgressRoundsToNearestPercent(t *testing.T) {
	cases := map[Step]int{
		StepPersonalInfo: 13,
		StepGoal:         25,
		StepExperience:   38,
		StepFrequency:    50,
		StepLocation:     63,
		StepEquipment:    75,
		StepRestrictions: 88,
		StepSummary:      100,
	}
	for step, want := range cases {
		if got := step.Progress(); got != want {
			t.Fatalf("%s: expected progress %d, got %d", step, want, got)
		}
	}
}
