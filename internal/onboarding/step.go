package onboarding

import (
	"fmt"
	"time"
)

// Step is a position in the onboarding flow.
type Step int

const (
	StepPersonalInfo Step = iota
	StepGoal
	StepExperience
	StepFrequency
	StepLocation
	StepEquipment
	StepRestrictions
	StepSummary
)

const TotalSteps = int(StepSummary) + 1

const (
	quickAdvanceDelay = 500 * time.Millisecond
	slowAdvanceDelay  = 800 * time.Millisecond
)

func (s Step) String() string {
	switch s {
	case StepPersonalInfo:
		return "personal_info"
	case StepGoal:
		return "goal"
	case StepExperience:
		return "experience"
	case StepFrequency:
		return "frequency"
	case StepLocation:
		return "location"
	case StepEquipment:
		return "equipment"
	case StepRestrictions:
		return "restrictions"
	case StepSummary:
		return "summary"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) Title() string {
	switch s {
	case StepPersonalInfo:
		return "Informações Pessoais"
	case StepGoal:
		return "Objetivo do Treino"
	case StepExperience:
		return "Nível de Experiência"
	case StepFrequency:
		return "Frequência Semanal"
	case StepLocation:
		return "Local de Treino"
	case StepEquipment:
		return "Equipamentos"
	case StepRestrictions:
		return "Restrições"
	case StepSummary:
		return "Resumo"
	}
	return s.String()
}

func (s Step) Valid() bool {
	return s >= StepPersonalInfo && s <= StepSummary
}

func (s Step) Index() int {
	return int(s)
}

// Progress is the share of the flow reached, rounded half up to whole percent.
func (s Step) Progress() int {
	return ((int(s)+1)*200 + TotalSteps) / (2 * TotalSteps)
}

// autoAdvanceDelay reports how long a single-choice step waits after a
// selection before moving on. Steps without auto-advance return false.
func autoAdvanceDelay(s Step) (time.Duration, bool) {
	switch s {
	case StepGoal, StepLocation:
		return quickAdvanceDelay, true
	case StepExperience, StepFrequency:
		return slowAdvanceDelay, true
	}
	return 0, false
}
