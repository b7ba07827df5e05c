package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/2beens/liftlog/internal/workouts"
	"github.com/2beens/liftlog/internal/workouts/stats"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler parses tool input, calls the service and formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

// GetSchemaTool returns the MCP tool handler for get_liftlog_schema.
func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// WorkoutStatsInput is the input for get_workout_stats.
type WorkoutStatsInput struct {
	UserID    string `json:"user_id" jsonschema:"Id of the user whose workouts are analyzed"`
	Timeframe string `json:"timeframe,omitempty" jsonschema:"One of 7days, 30days, all (default all)"`
	Exercise  string `json:"exercise,omitempty" jsonschema:"Exercise name to compute the progress line for"`
}

// GetWorkoutStatsTool returns the MCP tool handler for get_workout_stats.
func (h *Handler) GetWorkoutStatsTool() func(context.Context, *mcp.CallToolRequest, WorkoutStatsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutStatsInput) (*mcp.CallToolResult, any, error) {
		userID := strings.TrimSpace(in.UserID)
		if userID == "" {
			return errorResult("Missing user_id"), nil, nil
		}
		report, err := h.service.GetStats(ctx, userID, in.Timeframe, strings.TrimSpace(in.Exercise))
		if err != nil {
			return errorResult("Error computing stats: " + err.Error()), nil, nil
		}
		return jsonResult(report), nil, nil
	}
}

// WorkoutDaysInput is the input for get_workout_days.
type WorkoutDaysInput struct {
	UserID   string `json:"user_id" jsonschema:"Id of the user whose workouts are listed"`
	FromDate string `json:"from_date" jsonschema:"Start date (YYYY-MM-DD)"`
	ToDate   string `json:"to_date" jsonschema:"End date (YYYY-MM-DD)"`
}

// GetWorkoutDaysTool returns the MCP tool handler for get_workout_days.
func (h *Handler) GetWorkoutDaysTool() func(context.Context, *mcp.CallToolRequest, WorkoutDaysInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in WorkoutDaysInput) (*mcp.CallToolResult, any, error) {
		userID := strings.TrimSpace(in.UserID)
		if userID == "" {
			return errorResult("Missing user_id"), nil, nil
		}
		from, err := time.Parse(workouts.DateLayout, in.FromDate)
		if err != nil {
			return errorResult("Invalid from_date: use YYYY-MM-DD"), nil, nil
		}
		to, err := time.Parse(workouts.DateLayout, in.ToDate)
		if err != nil {
			return errorResult("Invalid to_date: use YYYY-MM-DD"), nil, nil
		}
		if to.Before(from) {
			return errorResult("to_date is before from_date"), nil, nil
		}

		days, err := h.service.ListDays(ctx, userID, from, to)
		if err != nil {
			return errorResult("Error listing workout days: " + err.Error()), nil, nil
		}
		if days == nil {
			days = []workouts.DaySessionRecord{}
		}
		return jsonResult(days), nil, nil
	}
}

// OneRepMaxInput is the input for get_estimated_one_rep_max.
type OneRepMaxInput struct {
	Weight float64 `json:"weight" jsonschema:"Weight lifted in the set"`
	Reps   int     `json:"reps" jsonschema:"Reps done in the set"`
}

type oneRepMaxOutput struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	E1RM   float64 `json:"e1RM"`
}

// GetOneRepMaxTool returns the MCP tool handler for get_estimated_one_rep_max.
func (h *Handler) GetOneRepMaxTool() func(context.Context, *mcp.CallToolRequest, OneRepMaxInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in OneRepMaxInput) (*mcp.CallToolResult, any, error) {
		if in.Weight <= 0 {
			return errorResult("weight must be positive"), nil, nil
		}
		if in.Reps < 1 {
			return errorResult("reps must be at least 1"), nil, nil
		}
		return jsonResult(oneRepMaxOutput{
			Weight: in.Weight,
			Reps:   in.Reps,
			E1RM:   stats.EstimatedOneRepMax(in.Weight, in.Reps),
		}), nil, nil
	}
}
