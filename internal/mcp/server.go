package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server the AI plan generator talks to. It is mounted
// on the main backend at /mcp and also served over stdio by cmd/repcoach_mcp.
func NewServer(service contextService) *mcp.Server {
	h := NewHandler(service)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "repcoach-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_recovery_status",
		Description: "Returns the recovery percentage (0-100) per major muscle group, with sub-muscle values for Arms and Legs, ordered Chest, Back, Shoulders, Arms, Legs. Optional arg: at (RFC3339). Use it to decide which muscles can be trained today.",
	}, h.GetRecoveryStatusTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_workout_history",
		Description: "Returns finished workouts (exercises, logged sets, volume, calories) ordered by date. Optional args: from_date, to_date (YYYY-MM-DD).",
	}, h.GetWorkoutHistoryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_exercise_library",
		Description: "Returns the active exercise library (id, name, primary and secondary muscles, equipment, type). Plans must only use exercises from it.",
	}, h.GetExerciseLibraryTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_profile",
		Description: "Returns the athlete profile (goal, experience, frequency, split, training style, gym, workout duration) and preferences (equipment constraints, disliked exercises).",
	}, h.GetProfileTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_schema",
		Description: "Returns the DB schema of the RepCoach tables (workout, exercise): columns, types, nullable, default.",
	}, h.GetSchemaTool())

	return s
}
