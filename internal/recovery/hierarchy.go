package recovery

// MuscleGroup is a major muscle group. A group without sub-muscles is
// standalone and stands for the muscle of the same name.
type MuscleGroup struct {
	Name       string
	SubMuscles []string
}

func (g MuscleGroup) Standalone() bool {
	return len(g.SubMuscles) == 0
}

// DefaultHierarchy returns the fixed grouping used for recovery output.
// Output order follows the declaration order here.
func DefaultHierarchy() []MuscleGroup {
	return []MuscleGroup{
		{Name: "Chest"},
		{Name: "Back"},
		{Name: "Shoulders"},
		{Name: "Arms", SubMuscles: []string{"Biceps", "Triceps", "Forearms"}},
		{Name: "Legs", SubMuscles: []string{"Quads", "Hamstrings", "Glutes", "Calves"}},
	}
}
