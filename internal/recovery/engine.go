package recovery

import (
	"math"
	"sort"
	"time"

	"github.com/mfarag11047/RepCoach/internal/workouts"
)

const (
	fullRecovery = 100

	// recovery reaches 25% after a day and 100% after three days
	fatigueHours   = 24.0
	fatigueRecover = 25.0
	fullHours      = 72.0
)

// Engine computes recovery status from a workout history. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	hierarchy []MuscleGroup
}

func NewEngine(hierarchy []MuscleGroup) *Engine {
	return &Engine{
		hierarchy: hierarchy,
	}
}

// Compute returns the recovery of every group with at least one of its
// muscles in knownMuscles, as of at. Muscles never worked are fully
// recovered. Muscles in the history but not in knownMuscles are ignored.
func (e *Engine) Compute(history workouts.History, knownMuscles []string, at time.Time) GroupedStatus {
	lastWorked := LastWorked(history)

	recovery := make(map[string]int, len(knownMuscles))
	for _, m := range knownMuscles {
		last, ok := lastWorked[m]
		if !ok {
			recovery[m] = fullRecovery
			continue
		}
		recovery[m] = Percentage(at.Sub(last))
	}

	groups := make([]GroupStatus, 0, len(e.hierarchy))
	for _, g := range e.hierarchy {
		if g.Standalone() {
			if r, ok := recovery[g.Name]; ok {
				groups = append(groups, GroupStatus{Name: g.Name, Average: r})
			}
			continue
		}

		subMuscles := make([]MuscleStatus, 0, len(g.SubMuscles))
		sum := 0
		for _, name := range g.SubMuscles {
			r, ok := recovery[name]
			if !ok {
				continue
			}
			subMuscles = append(subMuscles, MuscleStatus{Name: name, Recovery: r})
			sum += r
		}
		if len(subMuscles) == 0 {
			continue
		}
		groups = append(groups, GroupStatus{
			Name:       g.Name,
			Average:    roundHalfUp(float64(sum) / float64(len(subMuscles))),
			SubMuscles: subMuscles,
		})
	}

	return NewGroupedStatus(groups)
}

// LastWorked returns, for every muscle trained in the history, the most
// recent time it was a primary or secondary target. Entries with keys
// that are not timestamps are skipped.
func LastWorked(history workouts.History) map[string]time.Time {
	type timedWorkout struct {
		key     string
		at      time.Time
		workout workouts.Workout
	}
	timed := make([]timedWorkout, 0, len(history))
	for key, w := range history {
		at, err := workouts.ParseKey(key)
		if err != nil {
			continue
		}
		timed = append(timed, timedWorkout{key: key, at: at, workout: w})
	}
	sort.Slice(timed, func(i, j int) bool {
		if !timed[i].at.Equal(timed[j].at) {
			return timed[i].at.After(timed[j].at)
		}
		return timed[i].key < timed[j].key
	})

	lastWorked := make(map[string]time.Time)
	for _, tw := range timed {
		for _, ex := range tw.workout.Exercises {
			for _, m := range ex.MusclesWorked() {
				if _, seen := lastWorked[m]; seen {
					continue
				}
				lastWorked[m] = tw.at
			}
		}
	}
	return lastWorked
}

// Percentage is the recovery of a muscle last trained elapsed ago.
// Negative durations count as just trained.
func Percentage(elapsed time.Duration) int {
	hours := elapsed.Hours()
	if hours < 0 {
		hours = 0
	}

	var pct float64
	switch {
	case hours >= fullHours:
		pct = fullRecovery
	case hours >= fatigueHours:
		pct = fatigueRecover + (hours-fatigueHours)/(fullHours-fatigueHours)*(fullRecovery-fatigueRecover)
	default:
		pct = hours / fatigueHours * fatigueRecover
	}
	return roundHalfUp(pct)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
