package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const dateLayout = "2006-01-02"

// Handler turns tool calls into service calls and formats the results.
type Handler struct {
	service contextService
	now     func() time.Time
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

// NoInput is the input of tools that take no arguments.
type NoInput struct{}

type RecoveryStatusInput struct {
	At string `json:"at,omitempty" jsonschema:"Point in time (RFC3339) to compute recovery at, defaults to now"`
}

type WorkoutHistoryInput struct {
	FromDate string `json:"from_date,omitempty" jsonschema:"Start date (YYYY-MM-DD), inclusive"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"End date (YYYY-MM-DD), inclusive"`
}

func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

func (h *Handler) GetRecoveryStatusTool() func(context.Context, *mcp.CallToolRequest, RecoveryStatusInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RecoveryStatusInput) (*mcp.CallToolResult, any, error) {
		at := h.now()
		if in.At != "" {
			parsed, err := time.Parse(time.RFC3339, in.At)
			if err != nil {
				return errorResult("Invalid at: use RFC3339, e.g. 2024-05-01T18:00:00Z"), nil, nil
			}
			at = parsed
		}

		status, err := h.service.RecoveryStatus(ctx, at)
		if err != nil {
			return errorResult("Error computing recovery: " + err.Error()), nil, nil
		}
		return jsonResult(status), nil, nil
	}
}

func (h *Handler) GetWorkoutHistoryTool() func(context.Context, *mcp.CallToolRequest, WorkoutHistoryInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutHistoryInput) (*mcp.CallToolResult, any, error) {
		var from, to *time.Time
		if in.FromDate != "" {
			f, err := time.Parse(dateLayout, in.FromDate)
			if err != nil {
				return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
			}
			from = &f
		}
		if in.ToDate != "" {
			t, err := time.Parse(dateLayout, in.ToDate)
			if err != nil {
				return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
			}
			// to_date is inclusive, the range end is not
			t = t.AddDate(0, 0, 1)
			to = &t
		}

		entries, err := h.service.WorkoutHistory(ctx, from, to)
		if err != nil {
			return errorResult("Error listing workouts: " + err.Error()), nil, nil
		}
		return jsonResult(entries), nil, nil
	}
}

func (h *Handler) GetExerciseLibraryTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		library, err := h.service.ExerciseLibrary(ctx)
		if err != nil {
			return errorResult("Error fetching exercise library: " + err.Error()), nil, nil
		}
		return jsonResult(library), nil, nil
	}
}

func (h *Handler) GetProfileTool() func(context.Context, *mcp.CallToolRequest, NoInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ NoInput) (*mcp.CallToolResult, any, error) {
		p, err := h.service.Profile(ctx)
		if err != nil {
			return errorResult("Error fetching profile: " + err.Error()), nil, nil
		}
		return jsonResult(p), nil, nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}
