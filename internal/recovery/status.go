package recovery

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type State string

const (
	StateFatigued   State = "fatigued"
	StateRecovering State = "recovering"
	StateFresh      State = "fresh"
)

// StateOf maps a recovery percentage to its band.
func StateOf(recovery int) State {
	switch {
	case recovery < 25:
		return StateFatigued
	case recovery < 75:
		return StateRecovering
	default:
		return StateFresh
	}
}

type MuscleStatus struct {
	Name     string `json:"name"`
	Recovery int    `json:"recovery"`
}

type GroupStatus struct {
	Name    string `json:"name"`
	Average int    `json:"average"`
	// SubMuscles is nil for standalone groups.
	SubMuscles []MuscleStatus `json:"subMuscles,omitempty"`
}

// GroupedStatus is the recovery status per major muscle group, ordered
// as the hierarchy it was computed with. It serializes to a JSON object
// keeping that order:
//
//	{"Chest":{"average":100},"Arms":{"average":70,"subMuscles":{"Biceps":80,"Triceps":60}}}
type GroupedStatus struct {
	groups []GroupStatus
}

func NewGroupedStatus(groups []GroupStatus) GroupedStatus {
	return GroupedStatus{groups: groups}
}

func (s GroupedStatus) Groups() []GroupStatus {
	return s.groups
}

func (s GroupedStatus) Len() int {
	return len(s.groups)
}

func (s GroupedStatus) Names() []string {
	names := make([]string, len(s.groups))
	for i, g := range s.groups {
		names[i] = g.Name
	}
	return names
}

func (s GroupedStatus) Get(name string) (GroupStatus, bool) {
	for _, g := range s.groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupStatus{}, false
}

type MuscleState struct {
	Muscle   string `json:"muscle"`
	Group    string `json:"group"`
	Recovery int    `json:"recovery"`
	State    State  `json:"state"`
}

// States flattens the status into per-muscle bands, groups first and
// then their sub-muscles.
func (s GroupedStatus) States() []MuscleState {
	states := make([]MuscleState, 0, len(s.groups))
	for _, g := range s.groups {
		if g.SubMuscles == nil {
			states = append(states, MuscleState{
				Muscle:   g.Name,
				Group:    g.Name,
				Recovery: g.Average,
				State:    StateOf(g.Average),
			})
			continue
		}
		for _, m := range g.SubMuscles {
			states = append(states, MuscleState{
				Muscle:   m.Name,
				Group:    g.Name,
				Recovery: m.Recovery,
				State:    StateOf(m.Recovery),
			})
		}
	}
	return states
}

func (s GroupedStatus) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range s.groups {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, g.Name); err != nil {
			return nil, err
		}
		buf.WriteString(`{"average":`)
		buf.WriteString(strconv.Itoa(g.Average))
		if g.SubMuscles != nil {
			buf.WriteString(`,"subMuscles":{`)
			for j, m := range g.SubMuscles {
				if j > 0 {
					buf.WriteByte(',')
				}
				if err := writeKey(&buf, m.Name); err != nil {
					return nil, err
				}
				buf.WriteString(strconv.Itoa(m.Recovery))
			}
			buf.WriteByte('}')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	keyJson, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(keyJson)
	buf.WriteByte(':')
	return nil
}
