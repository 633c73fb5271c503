package exercises

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseExists   = errors.New("exercise already exists")
	ErrInvalidExercise  = errors.New("invalid exercise")
)

// Exercise is a single entry of the exercise library. The library's declared
// primary and secondary muscles define which muscle names the app knows about.
type Exercise struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	VideoURL         string    `json:"videoUrl"`
	PrimaryMuscle    string    `json:"primaryMuscle"`
	SecondaryMuscles []string  `json:"secondaryMuscles"`
	Equipment        string    `json:"equipment"`
	Type             string    `json:"type"`
	IsUserAdded      bool      `json:"isUserAdded"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}

// MusclesWorked returns the primary muscle followed by the secondary ones.
// Empty names are skipped.
func (e Exercise) MusclesWorked() []string {
	muscles := make([]string, 0, 1+len(e.SecondaryMuscles))
	if e.PrimaryMuscle != "" {
		muscles = append(muscles, e.PrimaryMuscle)
	}
	for _, m := range e.SecondaryMuscles {
		if m != "" {
			muscles = append(muscles, m)
		}
	}
	return muscles
}

func (e Exercise) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: id empty", ErrInvalidExercise)
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("%w: name empty", ErrInvalidExercise)
	}
	if strings.TrimSpace(e.PrimaryMuscle) == "" {
		return fmt.Errorf("%w: primary muscle empty for [%s]", ErrInvalidExercise, e.ID)
	}
	return nil
}

// KnownMuscles is the union of all primary and secondary muscles of the given
// library, in first-seen order.
func KnownMuscles(library []Exercise) []string {
	seen := make(map[string]struct{})
	muscles := make([]string, 0)
	for _, ex := range library {
		for _, m := range ex.MusclesWorked() {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			muscles = append(muscles, m)
		}
	}
	return muscles
}

// IDFromName derives a library id from an exercise name, e.g.
// "Barbell Bench Press" -> "barbell_bench_press".
func IDFromName(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
