// ABOUTME: MCP tool implementations for runs, moods, and recents.
// ABOUTME: Every tool goes through the tracker service, so validation matches the HTTP API.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/moodrun/internal/models"
	"github.com/harperreed/moodrun/internal/tracker"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_run",
		Description: "Log a run; pace is derived from total time and distance",
	}, s.handleAddRun)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_runs",
		Description: "List all logged runs in the order they were added",
	}, s.handleListRuns)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_run",
		Description: "Delete a run by ID",
	}, s.handleDeleteRun)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_mood",
		Description: "Log a mood snapshot with five levels from 1 to 10",
	}, s.handleAddMood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_moods",
		Description: "List all logged moods in the order they were added",
	}, s.handleListMoods)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_mood",
		Description: "Delete a mood by ID",
	}, s.handleDeleteMood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_recents",
		Description: "Get the most recently dated run and mood",
	}, s.handleGetRecents)
}

// Tool input/output types

type addRunInput struct {
	Name      string  `json:"name" jsonschema:"free-text name of the run"`
	Date      string  `json:"date" jsonschema:"when the run started, YYYY-MM-DDTHH:MM"`
	Distance  float64 `json:"distance" jsonschema:"distance covered, greater than zero"`
	TotalTime string  `json:"total_time" jsonschema:"elapsed time, HH:MM:SS"`
}

type runOutput struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Distance  float64 `json:"distance"`
	TotalTime string  `json:"total_time"`
	Pace      string  `json:"pace"`
}

type addRunOutput struct {
	Run     runOutput `json:"run"`
	Message string    `json:"message"`
}

type listRunsOutput struct {
	Runs []runOutput `json:"runs"`
}

type addMoodInput struct {
	PositivityLevel int    `json:"positivity_level" jsonschema:"1 to 10"`
	StressLevel     int    `json:"stress_level" jsonschema:"1 to 10"`
	EnergyLevel     int    `json:"energy_level" jsonschema:"1 to 10"`
	CalmnessLevel   int    `json:"calmness_level" jsonschema:"1 to 10"`
	MotivationLevel int    `json:"motivation_level" jsonschema:"1 to 10"`
	Date            string `json:"date,omitempty" jsonschema:"YYYY-MM-DDTHH:MM or YYYY-MM-DDTHH:MM:SS, defaults to now"`
}

type moodOutput struct {
	ID              int64  `json:"id"`
	Date            string `json:"date"`
	PositivityLevel int    `json:"positivity_level"`
	StressLevel     int    `json:"stress_level"`
	EnergyLevel     int    `json:"energy_level"`
	CalmnessLevel   int    `json:"calmness_level"`
	MotivationLevel int    `json:"motivation_level"`
}

type addMoodOutput struct {
	Mood    moodOutput `json:"mood"`
	Message string     `json:"message"`
}

type listMoodsOutput struct {
	Moods []moodOutput `json:"moods"`
}

type deleteInput struct {
	ID int64 `json:"id" jsonschema:"ID of the entry to delete"`
}

type listInput struct{}

type simpleOutput struct {
	Message string `json:"message"`
}

type recentsOutput struct {
	LatestRun  *runOutput  `json:"latest_run"`
	LatestMood *moodOutput `json:"latest_mood"`
}

// Tool handlers

func (s *Server) handleAddRun(ctx context.Context, req *mcp.CallToolRequest, input addRunInput) (*mcp.CallToolResult, addRunOutput, error) {
	r, err := s.svc.CreateRun(ctx, tracker.RunInputFrom(input.Name, input.Date, input.Distance, input.TotalTime))
	if err != nil {
		return nil, addRunOutput{}, err
	}

	return nil, addRunOutput{
		Run:     toRunOutput(r),
		Message: fmt.Sprintf("Added run %q (ID: %d, pace %s)", r.Name, r.ID, r.Pace),
	}, nil
}

func (s *Server) handleListRuns(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listRunsOutput, error) {
	runs, err := s.svc.ListRuns(ctx)
	if err != nil {
		return nil, listRunsOutput{}, fmt.Errorf("failed to list runs: %w", err)
	}

	out := listRunsOutput{Runs: make([]runOutput, 0, len(runs))}
	for _, r := range runs {
		out.Runs = append(out.Runs, toRunOutput(r))
	}
	return nil, out, nil
}

func (s *Server) handleDeleteRun(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.DeleteRun(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, err
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted run: %d", input.ID),
	}, nil
}

func (s *Server) handleAddMood(ctx context.Context, req *mcp.CallToolRequest, input addMoodInput) (*mcp.CallToolResult, addMoodOutput, error) {
	m, err := s.svc.CreateMood(ctx, tracker.MoodInputFrom(
		input.PositivityLevel,
		input.StressLevel,
		input.EnergyLevel,
		input.CalmnessLevel,
		input.MotivationLevel,
		input.Date,
	))
	if err != nil {
		return nil, addMoodOutput{}, err
	}

	return nil, addMoodOutput{
		Mood:    toMoodOutput(m),
		Message: fmt.Sprintf("Added mood (ID: %d)", m.ID),
	}, nil
}

func (s *Server) handleListMoods(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, listMoodsOutput, error) {
	moods, err := s.svc.ListMoods(ctx)
	if err != nil {
		return nil, listMoodsOutput{}, fmt.Errorf("failed to list moods: %w", err)
	}

	out := listMoodsOutput{Moods: make([]moodOutput, 0, len(moods))}
	for _, m := range moods {
		out.Moods = append(out.Moods, toMoodOutput(m))
	}
	return nil, out, nil
}

func (s *Server) handleDeleteMood(ctx context.Context, req *mcp.CallToolRequest, input deleteInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.svc.DeleteMood(ctx, input.ID); err != nil {
		return nil, simpleOutput{}, err
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted mood: %d", input.ID),
	}, nil
}

func (s *Server) handleGetRecents(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, recentsOutput, error) {
	out, err := s.recents(ctx)
	if err != nil {
		return nil, recentsOutput{}, err
	}
	return nil, *out, nil
}

func (s *Server) recents(ctx context.Context) (*recentsOutput, error) {
	rec, err := s.svc.Recents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recents: %w", err)
	}

	var out recentsOutput
	if rec.LatestRun != nil {
		r := toRunOutput(rec.LatestRun)
		out.LatestRun = &r
	}
	if rec.LatestMood != nil {
		m := toMoodOutput(rec.LatestMood)
		out.LatestMood = &m
	}
	return &out, nil
}

func toRunOutput(r *models.Run) runOutput {
	return runOutput{
		ID:        r.ID,
		Name:      r.Name,
		Date:      models.FormatDate(r.Date),
		Distance:  r.Distance,
		TotalTime: r.TotalTime,
		Pace:      r.Pace,
	}
}

func toMoodOutput(m *models.Mood) moodOutput {
	return moodOutput{
		ID:              m.ID,
		Date:            models.FormatDate(m.Date),
		PositivityLevel: m.PositivityLevel,
		StressLevel:     m.StressLevel,
		EnergyLevel:     m.EnergyLevel,
		CalmnessLevel:   m.CalmnessLevel,
		MotivationLevel: m.MotivationLevel,
	}
}
