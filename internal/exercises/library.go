package exercises

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed default_library.json
var defaultLibraryJson []byte

// DefaultLibrary returns a fresh copy of the built-in exercise library.
func DefaultLibrary() ([]Exercise, error) {
	var library []Exercise
	if err := json.Unmarshal(defaultLibraryJson, &library); err != nil {
		return nil, fmt.Errorf("unmarshal default library: %w", err)
	}
	return library, nil
}

// ParseLibrary decodes and validates a custom exercise library (JSON array).
func ParseLibrary(data []byte) ([]Exercise, error) {
	var library []Exercise
	if err := json.Unmarshal(data, &library); err != nil {
		return nil, fmt.Errorf("unmarshal library: %w", err)
	}
	if err := ValidateLibrary(library); err != nil {
		return nil, err
	}
	return library, nil
}

func ValidateLibrary(library []Exercise) error {
	if len(library) == 0 {
		return fmt.Errorf("%w: library empty", ErrInvalidExercise)
	}
	ids := make(map[string]bool, len(library))
	for _, ex := range library {
		if err := ex.Validate(); err != nil {
			return err
		}
		if ids[ex.ID] {
			return fmt.Errorf("%w: duplicate id [%s]", ErrInvalidExercise, ex.ID)
		}
		ids[ex.ID] = true
	}
	return nil
}
