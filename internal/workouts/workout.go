package workouts

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/mfarag11047/RepCoach/internal/exercises"
)

var (
	ErrEmptyWorkout    = errors.New("workout has no logged sets")
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrWorkoutExists   = errors.New("workout already exists")
	ErrInvalidKey      = errors.New("invalid workout key")
)

// KeyLayout is the layout of workout history keys, e.g. 2024-03-01T17:45:12.000Z.
const KeyLayout = "2006-01-02T15:04:05.000Z07:00"

// caloriesVolumeDivisor gives the calories estimate as total volume / 50.
const caloriesVolumeDivisor = 50

type SetStatus string

const (
	SetPending SetStatus = "pending"
	SetLogged  SetStatus = "logged"
)

type Set struct {
	Reps   int       `json:"reps"`
	Weight float64   `json:"weight"`
	Status SetStatus `json:"status"`
}

func (s Set) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

type LoggedExercise struct {
	exercises.Exercise
	Sets              []Set  `json:"sets"`
	RecommendedSets   int    `json:"recommendedSets,omitempty"`
	RecommendedReps   string `json:"recommendedReps,omitempty"`
	RecommendedWeight string `json:"recommendedWeight,omitempty"`
}

type Workout struct {
	// TotalTime is the session duration in seconds.
	TotalTime   int              `json:"totalTime"`
	TotalVolume float64          `json:"totalVolume"`
	Calories    int              `json:"calories"`
	Exercises   []LoggedExercise `json:"exercises"`
}

// History maps a workout key (its finish time) to the workout.
type History map[string]Workout

type Entry struct {
	Key     string  `json:"key"`
	Workout Workout `json:"workout"`
}

// Entries returns the history entries, newest first. Entries with keys
// that cannot be parsed go last, sorted by key.
func (h History) Entries() []Entry {
	type timedEntry struct {
		Entry
		at time.Time
		ok bool
	}
	timed := make([]timedEntry, 0, len(h))
	for key, w := range h {
		at, err := ParseKey(key)
		timed = append(timed, timedEntry{
			Entry: Entry{Key: key, Workout: w},
			at:    at,
			ok:    err == nil,
		})
	}
	sort.Slice(timed, func(i, j int) bool {
		if timed[i].ok != timed[j].ok {
			return timed[i].ok
		}
		if !timed[i].at.Equal(timed[j].at) {
			return timed[i].at.After(timed[j].at)
		}
		return timed[i].Key < timed[j].Key
	})

	entries := make([]Entry, len(timed))
	for i := range timed {
		entries[i] = timed[i].Entry
	}
	return entries
}

func NewKey(finishedAt time.Time) string {
	return finishedAt.UTC().Format(KeyLayout)
}

var keyLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// ParseKey parses a workout key. RFC 3339 keys with or without a fractional
// second are accepted, as are zone-less date-times and plain dates (UTC).
func ParseKey(key string) (time.Time, error) {
	for _, layout := range keyLayouts {
		if t, err := time.Parse(layout, key); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidKey
}

// Finish builds the workout to be stored from an active session log.
// Pending sets are dropped and so are exercises left with no sets.
func Finish(activeLog []LoggedExercise, totalTime int) (Workout, error) {
	logged := make([]LoggedExercise, 0, len(activeLog))
	totalVolume := 0.0
	for _, ex := range activeLog {
		sets := make([]Set, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			if s.Status != SetLogged {
				continue
			}
			sets = append(sets, s)
			totalVolume += s.Volume()
		}
		if len(sets) == 0 {
			continue
		}
		ex.Sets = sets
		logged = append(logged, ex)
	}

	if len(logged) == 0 {
		return Workout{}, ErrEmptyWorkout
	}
	if totalTime < 0 {
		totalTime = 0
	}

	return Workout{
		TotalTime:   totalTime,
		TotalVolume: totalVolume,
		Calories:    int(math.Floor(totalVolume/caloriesVolumeDivisor + 0.5)),
		Exercises:   logged,
	}, nil
}
