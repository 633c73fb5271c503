package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

type Goal string

const (
	GoalBuildMuscle  Goal = "Build Muscle"
	GoalLoseWeight   Goal = "Lose Weight"
	GoalGainStrength Goal = "Gain Strength"
)

type Experience string

const (
	ExperienceBeginner     Experience = "Beginner"
	ExperienceIntermediate Experience = "Intermediate"
	ExperienceAdvanced     Experience = "Advanced"
)

type WorkoutSplit string

const (
	SplitPushPullLegs WorkoutSplit = "Push/Pull/Legs"
	SplitFullBody     WorkoutSplit = "Full Body"
	SplitUpperLower   WorkoutSplit = "Upper/Lower"
	SplitBodyPart     WorkoutSplit = "Body Part Split"
)

type TrainingStyle string

const (
	StyleStrength     TrainingStyle = "Strength Training"
	StyleHypertrophy  TrainingStyle = "Hypertrophy"
	StyleCircuit      TrainingStyle = "Circuit Training"
	StyleGeneral      TrainingStyle = "General Fitness"
	StylePowerlifting TrainingStyle = "Powerlifting"
	StyleOlympic      TrainingStyle = "Olympic Weightlifting"
)

type GymBrand string

const (
	GymPlanetFitness  GymBrand = "Planet Fitness"
	GymLAFitness      GymBrand = "LA Fitness"
	GymAnytimeFitness GymBrand = "Anytime Fitness"
	Gym24HourFitness  GymBrand = "24 Hour Fitness"
	GymGoldsGym       GymBrand = "Gold's Gym"
	GymOther          GymBrand = "Other"
)

var (
	genders     = []Gender{GenderMale, GenderFemale}
	goals       = []Goal{GoalBuildMuscle, GoalLoseWeight, GoalGainStrength}
	experiences = []Experience{ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced}
	splits      = []WorkoutSplit{SplitPushPullLegs, SplitFullBody, SplitUpperLower, SplitBodyPart}
	styles      = []TrainingStyle{StyleStrength, StyleHypertrophy, StyleCircuit, StyleGeneral, StylePowerlifting, StyleOlympic}
	gymBrands   = []GymBrand{GymPlanetFitness, GymLAFitness, GymAnytimeFitness, Gym24HourFitness, GymGoldsGym, GymOther}
)

const autoGenerateTimeLayout = "15:04"

// UserProfile describes the athlete. Height is in inches, weight in lbs.
type UserProfile struct {
	Name             string        `json:"name"`
	Gender           Gender        `json:"gender"`
	Height           float64       `json:"height"`
	Weight           float64       `json:"weight"`
	Goal             Goal          `json:"goal"`
	Experience       Experience    `json:"experience"`
	Frequency        int           `json:"frequency"`
	WorkoutSplit     WorkoutSplit  `json:"workoutSplit"`
	TrainingStyle    TrainingStyle `json:"trainingStyle"`
	Gym              *GymBrand     `json:"gym"`
	AutoGenerateTime *string       `json:"autoGenerateTime"` // e.g. "17:30"
	WorkoutDuration  *int          `json:"workoutDuration"`  // minutes
}

// Preferences are constraints handed to the plan generator.
type Preferences struct {
	GymEquipmentConstraints string   `json:"gymEquipmentConstraints"`
	DislikedExercises       []string `json:"dislikedExercises"`
	UserAddedEquipment      []string `json:"userAddedEquipment"`
}

func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name empty", ErrInvalidProfile)
	}
	if !oneOf(p.Gender, genders) {
		return fmt.Errorf("%w: unknown gender [%s]", ErrInvalidProfile, p.Gender)
	}
	if p.Height <= 0 || p.Weight <= 0 {
		return fmt.Errorf("%w: height and weight must be positive", ErrInvalidProfile)
	}
	if !oneOf(p.Goal, goals) {
		return fmt.Errorf("%w: unknown goal [%s]", ErrInvalidProfile, p.Goal)
	}
	if !oneOf(p.Experience, experiences) {
		return fmt.Errorf("%w: unknown experience [%s]", ErrInvalidProfile, p.Experience)
	}
	if p.Frequency < 1 || p.Frequency > 7 {
		return fmt.Errorf("%w: frequency must be between 1 and 7 days", ErrInvalidProfile)
	}
	if !oneOf(p.WorkoutSplit, splits) {
		return fmt.Errorf("%w: unknown workout split [%s]", ErrInvalidProfile, p.WorkoutSplit)
	}
	if !oneOf(p.TrainingStyle, styles) {
		return fmt.Errorf("%w: unknown training style [%s]", ErrInvalidProfile, p.TrainingStyle)
	}
	if p.Gym != nil && !oneOf(*p.Gym, gymBrands) {
		return fmt.Errorf("%w: unknown gym [%s]", ErrInvalidProfile, *p.Gym)
	}
	if p.AutoGenerateTime != nil {
		if _, err := time.Parse(autoGenerateTimeLayout, *p.AutoGenerateTime); err != nil {
			return fmt.Errorf("%w: auto generate time must be HH:MM", ErrInvalidProfile)
		}
	}
	if p.WorkoutDuration != nil && *p.WorkoutDuration <= 0 {
		return fmt.Errorf("%w: workout duration must be positive", ErrInvalidProfile)
	}
	return nil
}

// Normalize replaces nil lists with empty ones and drops blank entries.
func (p Preferences) Normalize() Preferences {
	return Preferences{
		GymEquipmentConstraints: strings.TrimSpace(p.GymEquipmentConstraints),
		DislikedExercises:       nonBlank(p.DislikedExercises),
		UserAddedEquipment:      nonBlank(p.UserAddedEquipment),
	}
}

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
