package models

import (
	"fmt"
	"strings"
)

type Sex string

const (
	SexMale   Sex = "masculino"
	SexFemale Sex = "feminino"
)

var AllSexes = []Sex{SexMale, SexFemale}

func (s Sex) Label() string {
	switch s {
	case SexMale:
		return "Masculino"
	case SexFemale:
		return "Feminino"
	}
	return string(s)
}

func (s Sex) Valid() bool {
	switch s {
	case SexMale, SexFemale:
		return true
	}
	return false
}

func ParseSex(value string) (Sex, error) {
	s := Sex(strings.TrimSpace(value))
	if !s.Valid() {
		return "", fmt.Errorf("sexo must be one of: %s", joinValues(AllSexes))
	}
	return s, nil
}

// Goal is the training objective picked during onboarding.
type Goal string

const (
	GoalMass         Goal = "mass"
	GoalWeightLoss   Goal = "weight_loss"
	GoalConditioning Goal = "conditioning"
	GoalHealth       Goal = "health"
)

var AllGoals = []Goal{GoalMass, GoalWeightLoss, GoalConditioning, GoalHealth}

func (g Goal) Label() string {
	switch g {
	case GoalMass:
		return "Ganho de Massa"
	case GoalWeightLoss:
		return "Emagrecimento"
	case GoalConditioning:
		return "Condicionamento"
	case GoalHealth:
		return "Saúde Geral"
	}
	return string(g)
}

func (g Goal) Valid() bool {
	switch g {
	case GoalMass, GoalWeightLoss, GoalConditioning, GoalHealth:
		return true
	}
	return false
}

func ParseGoal(value string) (Goal, error) {
	g := Goal(strings.TrimSpace(value))
	if !g.Valid() {
		return "", fmt.Errorf("objetivo must be one of: %s", joinValues(AllGoals))
	}
	return g, nil
}

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

var AllExperiences = []Experience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}

func (e Experience) Label() string {
	switch e {
	case ExperienceBeginner:
		return "Iniciante"
	case ExperienceIntermediate:
		return "Intermediário"
	case ExperienceAdvanced:
		return "Avançado"
	}
	return string(e)
}

func (e Experience) Valid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
		return true
	}
	return false
}

func ParseExperience(value string) (Experience, error) {
	e := Experience(strings.TrimSpace(value))
	if !e.Valid() {
		return "", fmt.Errorf("nivel_experiencia must be one of: %s", joinValues(AllExperiences))
	}
	return e, nil
}

// Frequency is a weekly training range bucket.
type Frequency string

const (
	FrequencyLow    Frequency = "2-3"
	FrequencyMedium Frequency = "4-5"
	FrequencyHigh   Frequency = "6-7"
)

var AllFrequencies = []Frequency{FrequencyLow, FrequencyMedium, FrequencyHigh}

func (f Frequency) Label() string {
	switch f {
	case FrequencyLow:
		return "2-3 vezes por semana"
	case FrequencyMedium:
		return "4-5 vezes por semana"
	case FrequencyHigh:
		return "6-7 vezes por semana"
	}
	return string(f)
}

// SessionMinutes is the time budget per session for a frequency bucket.
// Fewer sessions a week get longer sessions.
func (f Frequency) SessionMinutes() int {
	switch f {
	case FrequencyLow:
		return 60
	case FrequencyMedium:
		return 45
	case FrequencyHigh:
		return 30
	}
	return 0
}

func (f Frequency) Valid() bool {
	switch f {
	case FrequencyLow, FrequencyMedium, FrequencyHigh:
		return true
	}
	return false
}

func ParseFrequency(value string) (Frequency, error) {
	f := Frequency(strings.TrimSpace(value))
	if !f.Valid() {
		return "", fmt.Errorf("frequencia_treino must be one of: %s", joinValues(AllFrequencies))
	}
	return f, nil
}

type Location string

const (
	LocationGym   Location = "gym"
	LocationHome  Location = "home"
	LocationPark  Location = "park"
	LocationCondo Location = "condo"
)

var AllLocations = []Location{LocationGym, LocationHome, LocationPark, LocationCondo}

func (l Location) Label() string {
	switch l {
	case LocationGym:
		return "Academia Completa"
	case LocationHome:
		return "Em Casa"
	case LocationPark:
		return "Parque/Rua"
	case LocationCondo:
		return "Academia do Condomínio"
	}
	return string(l)
}

func (l Location) Valid() bool {
	switch l {
	case LocationGym, LocationHome, LocationPark, LocationCondo:
		return true
	}
	return false
}

func ParseLocation(value string) (Location, error) {
	l := Location(strings.TrimSpace(value))
	if !l.Valid() {
		return "", fmt.Errorf("local_treino must be one of: %s", joinValues(AllLocations))
	}
	return l, nil
}

type Equipment string

const (
	EquipmentNone            Equipment = "none"
	EquipmentDumbbells       Equipment = "dumbbells"
	EquipmentResistanceBands Equipment = "resistance_bands"
	EquipmentKettlebells     Equipment = "kettlebells"
	EquipmentBarbell         Equipment = "barbell"
	EquipmentPullUpBar       Equipment = "pull_up_bar"
	EquipmentYogaMat         Equipment = "yoga_mat"
	EquipmentBench           Equipment = "bench"
	EquipmentMachines        Equipment = "machines"
	EquipmentCardio          Equipment = "cardio"
)

var AllEquipment = []Equipment{
	EquipmentNone,
	EquipmentDumbbells,
	EquipmentResistanceBands,
	EquipmentKettlebells,
	EquipmentBarbell,
	EquipmentPullUpBar,
	EquipmentYogaMat,
	EquipmentBench,
	EquipmentMachines,
	EquipmentCardio,
}

func (e Equipment) Label() string {
	switch e {
	case EquipmentNone:
		return "Nenhum equipamento"
	case EquipmentDumbbells:
		return "Halteres"
	case EquipmentResistanceBands:
		return "Faixas elásticas"
	case EquipmentKettlebells:
		return "Kettlebells"
	case EquipmentBarbell:
		return "Barras e anilhas"
	case EquipmentPullUpBar:
		return "Barra fixa"
	case EquipmentYogaMat:
		return "Tapete de yoga"
	case EquipmentBench:
		return "Banco"
	case EquipmentMachines:
		return "Máquinas de musculação"
	case EquipmentCardio:
		return "Equipamentos de cardio"
	}
	return string(e)
}

func (e Equipment) Valid() bool {
	switch e {
	case EquipmentNone, EquipmentDumbbells, EquipmentResistanceBands, EquipmentKettlebells,
		EquipmentBarbell, EquipmentPullUpBar, EquipmentYogaMat, EquipmentBench,
		EquipmentMachines, EquipmentCardio:
		return true
	}
	return false
}

func ParseEquipment(value string) (Equipment, error) {
	e := Equipment(strings.TrimSpace(value))
	if !e.Valid() {
		return "", fmt.Errorf("equipment must be one of: %s", joinValues(AllEquipment))
	}
	return e, nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}
