package onboarding

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/repository"
)

var (
	ErrFinalStep    = errors.New("already on the final step")
	ErrNotOnSummary = errors.New("confirmation is only allowed on the summary step")
	ErrClosed       = errors.New("onboarding session is closed")
)

// ProfileWriter persists a finished onboarding in a single write.
type ProfileWriter interface {
	CompleteOnboarding(ctx context.Context, userID int64, req repository.UserOnboardingInput) (*models.UserProfile, error)
}

type State struct {
	Step       string `json:"step"`
	StepIndex  int    `json:"step_index"`
	TotalSteps int    `json:"total_steps"`
	Title      string `json:"title"`
	Progress   int    `json:"progress"`
	CanAdvance bool   `json:"can_advance"`
	Draft      Draft  `json:"draft"`
}

// Wizard drives one user's onboarding. It is safe for concurrent use.
//
// Selections on single-choice steps schedule an automatic advance. Each
// scheduled advance remembers the step and generation it was created for;
// any navigation, newer selection or Close bumps the generation so a timer
// that fires afterwards does nothing.
type Wizard struct {
	mu         sync.Mutex
	userID     int64
	step       Step
	draft      Draft
	generation uint64
	timer      *time.Timer
	closed     bool

	now   func() time.Time
	delay func(Step) (time.Duration, bool)
}

func NewWizard(userID int64) *Wizard {
	return &Wizard{
		userID: userID,
		step:   StepPersonalInfo,
		now:    time.Now,
		delay:  autoAdvanceDelay,
	}
}

func (w *Wizard) UserID() int64 {
	return w.userID
}

func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stateLocked()
}

// Update applies p to the draft. An invalid patch changes nothing.
func (w *Wizard) Update(p Patch) (State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return w.stateLocked(), ErrClosed
	}
	if err := p.validate(); err != nil {
		return w.stateLocked(), err
	}

	w.cancelLocked()
	w.draft.apply(p)
	if selectsCurrentStep(w.step, p) {
		w.scheduleLocked()
	}
	return w.stateLocked(), nil
}

// Next moves forward one step when the current step validates. Otherwise
// the position is unchanged and the validation error is returned.
func (w *Wizard) Next() (State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return w.stateLocked(), ErrClosed
	}
	w.cancelLocked()
	if err := w.advanceLocked(); err != nil {
		return w.stateLocked(), err
	}
	return w.stateLocked(), nil
}

// Previous moves back one step without touching the draft. It is a no-op on
// the first step.
func (w *Wizard) Previous() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cancelLocked()
	if !w.closed && w.step > StepPersonalInfo {
		w.step--
	}
	return w.stateLocked()
}

// Confirm writes the finished onboarding through writer. A failed write keeps
// the wizard and its draft intact so the caller can retry.
func (w *Wizard) Confirm(ctx context.Context, writer ProfileWriter) (*models.UserProfile, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, ErrClosed
	}
	if w.step != StepSummary {
		return nil, ErrNotOnSummary
	}
	w.cancelLocked()

	input, err := w.draft.OnboardingInput(w.now())
	if err != nil {
		return nil, err
	}
	return writer.CompleteOnboarding(ctx, w.userID, input)
}

// Close cancels any pending advance. Later calls fail with ErrClosed.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.cancelLocked()
	w.closed = true
}

func (w *Wizard) advanceLocked() error {
	if w.step == StepSummary {
		return ErrFinalStep
	}
	if w.step == StepEquipment && len(w.draft.Equipment) == 0 {
		w.draft.Equipment = []models.Equipment{models.EquipmentNone}
	}
	if err := w.draft.ValidateStep(w.step, w.now()); err != nil {
		return err
	}
	w.step++
	return nil
}

func (w *Wizard) scheduleLocked() {
	delay, ok := w.delay(w.step)
	if !ok {
		return
	}
	generation := w.generation
	step := w.step
	w.timer = time.AfterFunc(delay, func() {
		w.autoAdvance(step, generation)
	})
}

func (w *Wizard) autoAdvance(step Step, generation uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.generation != generation || w.step != step {
		return
	}
	w.timer = nil
	w.generation++
	_ = w.advanceLocked()
}

func (w *Wizard) cancelLocked() {
	w.generation++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Wizard) stateLocked() State {
	return State{
		Step:       w.step.String(),
		StepIndex:  w.step.Index(),
		TotalSteps: TotalSteps,
		Title:      w.step.Title(),
		Progress:   w.step.Progress(),
		CanAdvance: w.step != StepSummary && w.draft.ValidateStep(w.step, w.now()) == nil,
		Draft:      w.draft.clone(),
	}
}

func selectsCurrentStep(step Step, p Patch) bool {
	switch step {
	case StepGoal:
		return p.Goal != nil
	case StepExperience:
		return p.Experience != nil
	case StepFrequency:
		return p.Frequency != nil
	case StepLocation:
		return p.Location != nil
	}
	return false
}

// Complete validates a whole client-held draft and persists it in one write.
func Complete(ctx context.Context, writer ProfileWriter, userID int64, draft Draft, now time.Time) (*models.UserProfile, error) {
	input, err := draft.OnboardingInput(now)
	if err != nil {
		return nil, err
	}
	return writer.CompleteOnboarding(ctx, userID, input)
}
