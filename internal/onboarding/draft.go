package onboarding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/repository"
)

const (
	BirthDateLayout = "2006-01-02"
	MinAge          = 13
	MaxAge          = 100
)

var (
	ErrIncompleteStep = errors.New("step is incomplete")
	ErrInvalidValue   = errors.New("invalid value")
)

// Draft is the onboarding answers collected so far.
type Draft struct {
	FullName     string             `json:"nome_completo"`
	Sex          models.Sex         `json:"sexo"`
	BirthDate    string             `json:"data_nascimento"`
	Goal         models.Goal        `json:"objetivo"`
	Experience   models.Experience  `json:"nivel_experiencia"`
	Frequency    models.Frequency   `json:"frequencia_treino"`
	Location     models.Location    `json:"local_treino"`
	Equipment    []models.Equipment `json:"equipamentos"`
	Restrictions string             `json:"restricoes"`
}

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	FullName        *string             `json:"nome_completo"`
	Sex             *models.Sex         `json:"sexo"`
	BirthDate       *string             `json:"data_nascimento"`
	Goal            *models.Goal        `json:"objetivo"`
	Experience      *models.Experience  `json:"nivel_experiencia"`
	Frequency       *models.Frequency   `json:"frequencia_treino"`
	Location        *models.Location    `json:"local_treino"`
	Equipment       *[]models.Equipment `json:"equipamentos"`
	ToggleEquipment *models.Equipment   `json:"alternar_equipamento"`
	Restrictions    *string             `json:"restricoes"`
}

func (p Patch) validate() error {
	if p.Sex != nil && !p.Sex.Valid() {
		_, err := models.ParseSex(string(*p.Sex))
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if p.BirthDate != nil && strings.TrimSpace(*p.BirthDate) != "" {
		if _, err := time.Parse(BirthDateLayout, strings.TrimSpace(*p.BirthDate)); err != nil {
			return fmt.Errorf("%w: data_nascimento must use YYYY-MM-DD", ErrInvalidValue)
		}
	}
	if p.Goal != nil && !p.Goal.Valid() {
		_, err := models.ParseGoal(string(*p.Goal))
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if p.Experience != nil && !p.Experience.Valid() {
		_, err := models.ParseExperience(string(*p.Experience))
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if p.Frequency != nil && !p.Frequency.Valid() {
		_, err := models.ParseFrequency(string(*p.Frequency))
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if p.Location != nil && !p.Location.Valid() {
		_, err := models.ParseLocation(string(*p.Location))
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if p.Equipment != nil {
		if err := validateEquipmentList(*p.Equipment); err != nil {
			return err
		}
	}
	if p.ToggleEquipment != nil && !p.ToggleEquipment.Valid() {
		_, err := models.ParseEquipment(string(*p.ToggleEquipment))
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return nil
}

// apply assumes validate already passed.
func (d *Draft) apply(p Patch) {
	if p.FullName != nil {
		d.FullName = *p.FullName
	}
	if p.Sex != nil {
		d.Sex = *p.Sex
	}
	if p.BirthDate != nil {
		d.BirthDate = strings.TrimSpace(*p.BirthDate)
	}
	if p.Goal != nil {
		d.Goal = *p.Goal
	}
	if p.Experience != nil {
		d.Experience = *p.Experience
	}
	if p.Frequency != nil {
		d.Frequency = *p.Frequency
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.Equipment != nil {
		d.Equipment = dedupeEquipment(*p.Equipment)
	}
	if p.ToggleEquipment != nil {
		d.ToggleEquipment(*p.ToggleEquipment)
	}
	if p.Restrictions != nil {
		d.Restrictions = *p.Restrictions
	}
}

// ToggleEquipment flips item in the selection. Choosing "none" clears every
// other item, and choosing anything else drops "none".
func (d *Draft) ToggleEquipment(item models.Equipment) {
	if item == models.EquipmentNone {
		d.Equipment = []models.Equipment{models.EquipmentNone}
		return
	}

	next := make([]models.Equipment, 0, len(d.Equipment)+1)
	found := false
	for _, existing := range d.Equipment {
		switch existing {
		case models.EquipmentNone:
			continue
		case item:
			found = true
			continue
		}
		next = append(next, existing)
	}
	if !found {
		next = append(next, item)
	}
	d.Equipment = next
}

// ValidateStep checks the fields owned by step. now anchors the age check.
func (d *Draft) ValidateStep(step Step, now time.Time) error {
	switch step {
	case StepPersonalInfo:
		if strings.TrimSpace(d.FullName) == "" {
			return fmt.Errorf("%w: nome_completo is required", ErrIncompleteStep)
		}
		if !d.Sex.Valid() {
			return fmt.Errorf("%w: sexo is required", ErrIncompleteStep)
		}
		birth, err := d.birthDate()
		if err != nil {
			return err
		}
		if age := AgeOn(birth, now); age < MinAge || age > MaxAge {
			return fmt.Errorf("%w: age must be between %d and %d", ErrIncompleteStep, MinAge, MaxAge)
		}
	case StepGoal:
		if !d.Goal.Valid() {
			return fmt.Errorf("%w: objetivo is required", ErrIncompleteStep)
		}
	case StepExperience:
		if !d.Experience.Valid() {
			return fmt.Errorf("%w: nivel_experiencia is required", ErrIncompleteStep)
		}
	case StepFrequency:
		if !d.Frequency.Valid() {
			return fmt.Errorf("%w: frequencia_treino is required", ErrIncompleteStep)
		}
	case StepLocation:
		if !d.Location.Valid() {
			return fmt.Errorf("%w: local_treino is required", ErrIncompleteStep)
		}
	case StepEquipment:
		if len(d.Equipment) > 0 {
			return validateEquipmentList(d.Equipment)
		}
	case StepRestrictions, StepSummary:
	default:
		return fmt.Errorf("%w: unknown step %d", ErrInvalidValue, int(step))
	}
	return nil
}

// Validate checks every step in order and reports the first incomplete one.
func (d *Draft) Validate(now time.Time) (Step, error) {
	for step := StepPersonalInfo; step <= StepSummary; step++ {
		if err := d.ValidateStep(step, now); err != nil {
			return step, err
		}
	}
	return StepSummary, nil
}

// OnboardingInput turns a complete draft into the profile write, deriving
// the session length from the weekly frequency and the equipment summary
// from the selected labels.
func (d *Draft) OnboardingInput(now time.Time) (repository.UserOnboardingInput, error) {
	if _, err := d.Validate(now); err != nil {
		return repository.UserOnboardingInput{}, err
	}
	birth, err := d.birthDate()
	if err != nil {
		return repository.UserOnboardingInput{}, err
	}

	equipment := d.Equipment
	if len(equipment) == 0 {
		equipment = []models.Equipment{models.EquipmentNone}
	}
	labels := make([]string, 0, len(equipment))
	for _, item := range equipment {
		labels = append(labels, item.Label())
	}

	return repository.UserOnboardingInput{
		FullName:           strings.TrimSpace(d.FullName),
		Sex:                string(d.Sex),
		BirthDate:          birth,
		Goal:               string(d.Goal),
		ExperienceLevel:    string(d.Experience),
		TrainingFrequency:  string(d.Frequency),
		Restrictions:       strings.TrimSpace(d.Restrictions),
		AvailableTime:      strconv.Itoa(d.Frequency.SessionMinutes()),
		TrainingPreference: strings.Join(labels, ", "),
		TrainingLocation:   string(d.Location),
		CompletedAt:        now,
	}, nil
}

func (d *Draft) clone() Draft {
	copied := *d
	if d.Equipment != nil {
		copied.Equipment = append([]models.Equipment(nil), d.Equipment...)
	}
	return copied
}

func (d *Draft) birthDate() (time.Time, error) {
	if strings.TrimSpace(d.BirthDate) == "" {
		return time.Time{}, fmt.Errorf("%w: data_nascimento is required", ErrIncompleteStep)
	}
	birth, err := time.Parse(BirthDateLayout, strings.TrimSpace(d.BirthDate))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: data_nascimento must use YYYY-MM-DD", ErrInvalidValue)
	}
	return birth, nil
}

// AgeOn returns the age in whole years on the given day.
func AgeOn(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

func validateEquipmentList(items []models.Equipment) error {
	hasNone := false
	for _, item := range items {
		if !item.Valid() {
			_, err := models.ParseEquipment(string(item))
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		if item == models.EquipmentNone {
			hasNone = true
		}
	}
	if hasNone && len(dedupeEquipment(items)) > 1 {
		return fmt.Errorf("%w: none cannot be combined with other equipment", ErrInvalidValue)
	}
	return nil
}

func dedupeEquipment(items []models.Equipment) []models.Equipment {
	seen := make(map[models.Equipment]bool, len(items))
	out := make([]models.Equipment, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
