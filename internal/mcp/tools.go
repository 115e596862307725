// ABOUTME: MCP tool implementations for the fitness store.
// ABOUTME: Account/session tools, training and body ledgers, catalog search and plans.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/fitness/internal/catalog"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/plan"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "register",
		Description: "Create a user account",
	}, s.handleRegister)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "login",
		Description: "Log in; replaces any current session",
	}, s.handleLogin)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "logout",
		Description: "End the current session",
	}, s.handleLogout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "whoami",
		Description: "Show the logged-in user, if any",
	}, s.handleWhoami)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_training_record",
		Description: "Record exercises and group counts for a day; a second save for the same day adds to it",
	}, s.handleSaveTrainingRecord)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_training_records",
		Description: "List training records, most recently created first",
	}, s.handleListTrainingRecords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_body_stats",
		Description: "Record height, weight and optional body fat / BMR for a day; replaces that day's entry",
	}, s.handleSaveBodyStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_body_stats",
		Description: "List body measurements, newest day first",
	}, s.handleListBodyStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_latest_body_stats",
		Description: "Get the newest body measurement",
	}, s.handleGetLatestBodyStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_exercises",
		Description: "Search the exercise catalog by name, muscle or equipment",
	}, s.handleSearchExercises)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "generate_plan",
		Description: "Build a workout plan for a muscle and time budget, optionally saving it as a training record",
	}, s.handleGeneratePlan)
}

// Tool input/output types

type credentialsInput struct {
	Username string `json:"username" jsonschema:"account name"`
	Password string `json:"password" jsonschema:"account password"`
}

type sessionOutput struct {
	LoggedIn bool   `json:"logged_in"`
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
	Message  string `json:"message"`
}

type saveTrainingInput struct {
	Date        string   `json:"date,omitempty" jsonschema:"day as YYYYMMDD, YYYY-MM-DD, today or yesterday; defaults to today"`
	Exercises   []string `json:"exercises" jsonschema:"exercise names" validate:"dive,required"`
	GroupCounts []int    `json:"group_counts" jsonschema:"group count for each exercise, same order" validate:"dive,min=0"`
}

type saveTrainingOutput struct {
	ID      int64  `json:"id"`
	Date    string `json:"date"`
	Result  string `json:"result"`
	Message string `json:"message"`
}

type listInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"max results (default 10)"`
}

type saveBodyInput struct {
	Date               string   `json:"date,omitempty" jsonschema:"day as YYYYMMDD, YYYY-MM-DD, today or yesterday; defaults to today"`
	Height             float64  `json:"height" jsonschema:"height in cm"`
	Weight             float64  `json:"weight" jsonschema:"weight in kg"`
	BodyFat            *float64 `json:"body_fat,omitempty" jsonschema:"body fat percentage"`
	BasalMetabolicRate *float64 `json:"basal_metabolic_rate,omitempty" jsonschema:"basal metabolic rate in kcal"`
}

type simpleOutput struct {
	ID      int64  `json:"id,omitempty"`
	Message string `json:"message"`
}

type searchInput struct {
	Keyword string `json:"keyword,omitempty" jsonschema:"text to look for; empty lists everything"`
}

type generatePlanInput struct {
	Minutes       int    `json:"minutes" jsonschema:"training time in minutes"`
	Muscle        string `json:"muscle" jsonschema:"target muscle"`
	MaxDifficulty int    `json:"max_difficulty" jsonschema:"highest difficulty to include, 1-5"`
	SaveAs        string `json:"save_as,omitempty" jsonschema:"if set, save the plan as the training record for this day"`
}

type generatePlanOutput struct {
	Exercises   []string            `json:"exercises"`
	GroupCounts []int               `json:"group_counts"`
	Minutes     int                 `json:"minutes"`
	Slots       []models.Exercise   `json:"slots"`
	Saved       *saveTrainingOutput `json:"saved,omitempty"`
}

// Tool handlers

func (s *Server) handleRegister(ctx context.Context, req *mcp.CallToolRequest, input credentialsInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := s.repo.Register(ctx, input.Username, input.Password)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to register: %w", err)
	}
	return nil, simpleOutput{
		ID:      id,
		Message: fmt.Sprintf("Registered %s", input.Username),
	}, nil
}

func (s *Server) handleLogin(ctx context.Context, req *mcp.CallToolRequest, input credentialsInput) (*mcp.CallToolResult, sessionOutput, error) {
	who, err := s.repo.Login(ctx, input.Username, input.Password)
	if err != nil {
		return nil, sessionOutput{}, fmt.Errorf("failed to log in: %w", err)
	}
	return nil, sessionOutput{
		LoggedIn: true,
		UserID:   who.UserID,
		Username: who.Username,
		Message:  fmt.Sprintf("Logged in as %s", who.Username),
	}, nil
}

func (s *Server) handleLogout(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, sessionOutput, error) {
	who, ok := s.repo.CurrentUser()
	s.repo.Logout()
	if !ok {
		return nil, sessionOutput{Message: "No active session"}, nil
	}
	return nil, sessionOutput{Message: fmt.Sprintf("Logged out %s", who.Username)}, nil
}

func (s *Server) handleWhoami(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, sessionOutput, error) {
	who, ok := s.repo.CurrentUser()
	if !ok {
		return nil, sessionOutput{Message: "Not logged in"}, nil
	}
	return nil, sessionOutput{
		LoggedIn: true,
		UserID:   who.UserID,
		Username: who.Username,
		Message:  fmt.Sprintf("Logged in as %s", who.Username),
	}, nil
}

func (s *Server) handleSaveTrainingRecord(ctx context.Context, req *mcp.CallToolRequest, input saveTrainingInput) (*mcp.CallToolResult, saveTrainingOutput, error) {
	if _, ok := s.repo.CurrentUser(); !ok {
		return nil, saveTrainingOutput{}, fmt.Errorf("failed to save training record: %w", models.ErrUnauthenticated)
	}
	if err := catalog.Validate(&input); err != nil {
		return nil, saveTrainingOutput{}, fmt.Errorf("%w: %w", models.ErrIntegrityViolation, err)
	}
	day, err := models.NormalizeDay(input.Date, s.now())
	if err != nil {
		return nil, saveTrainingOutput{}, err
	}
	out, err := s.saveTraining(ctx, day, input.Exercises, input.GroupCounts)
	if err != nil {
		return nil, saveTrainingOutput{}, err
	}
	return nil, *out, nil
}

func (s *Server) saveTraining(ctx context.Context, day string, exercises []string, counts []int) (*saveTrainingOutput, error) {
	outcome, err := s.repo.SaveTrainingRecord(ctx, day, exercises, counts)
	if err != nil {
		return nil, fmt.Errorf("failed to save training record: %w", err)
	}
	verb := "Saved"
	if outcome.Kind == models.Merged {
		verb = "Merged into"
	}
	return &saveTrainingOutput{
		ID:      outcome.ID,
		Date:    day,
		Result:  outcome.Kind.String(),
		Message: fmt.Sprintf("%s training record for %s (ID: %d)", verb, models.DisplayDay(day), outcome.ID),
	}, nil
}

func (s *Server) handleListTrainingRecords(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	records, err := s.repo.GetTrainingRecords(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list training records: %w", err)
	}
	if len(records) == 0 {
		return nil, map[string]any{"message": "No training records found."}, nil
	}
	return nil, map[string]any{"records": records}, nil
}

func (s *Server) handleSaveBodyStats(ctx context.Context, req *mcp.CallToolRequest, input saveBodyInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, err := models.NormalizeDay(input.Date, s.now())
	if err != nil {
		return nil, simpleOutput{}, err
	}
	in := models.NewBodyStatsInput(day, input.Height, input.Weight)
	in.BodyFat = input.BodyFat
	in.BasalMetabolicRate = input.BasalMetabolicRate

	id, err := s.repo.SaveBodyStats(ctx, in)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save body stats: %w", err)
	}
	return nil, simpleOutput{
		ID:      id,
		Message: fmt.Sprintf("Saved body stats for %s (ID: %d)", models.DisplayDay(day), id),
	}, nil
}

func (s *Server) handleListBodyStats(ctx context.Context, req *mcp.CallToolRequest, input listInput) (*mcp.CallToolResult, any, error) {
	stats, err := s.repo.GetBodyStatsHistory(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list body stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, map[string]any{"message": "No body stats found."}, nil
	}
	return nil, map[string]any{"body_stats": stats}, nil
}

func (s *Server) handleGetLatestBodyStats(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	latest, ok, err := s.repo.GetLatestBodyStats(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get latest body stats: %w", err)
	}
	if !ok {
		return nil, map[string]any{"message": "No body stats found."}, nil
	}
	return nil, latest, nil
}

func (s *Server) handleSearchExercises(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, any, error) {
	found := s.lib.Search(input.Keyword)
	if len(found) == 0 {
		return nil, map[string]any{"message": "No matching exercises."}, nil
	}
	return nil, map[string]any{"exercises": found}, nil
}

func (s *Server) handleGeneratePlan(ctx context.Context, req *mcp.CallToolRequest, input generatePlanInput) (*mcp.CallToolResult, generatePlanOutput, error) {
	p, err := plan.Generate(s.lib, plan.Request{
		Minutes:       input.Minutes,
		Muscle:        input.Muscle,
		MaxDifficulty: input.MaxDifficulty,
	})
	if err != nil {
		return nil, generatePlanOutput{}, fmt.Errorf("failed to generate plan: %w", err)
	}

	tally := p.Tally()
	out := generatePlanOutput{
		Exercises:   tally.Names(),
		GroupCounts: tally.Counts(),
		Minutes:     p.Minutes(),
		Slots:       p.Slots,
	}

	if input.SaveAs != "" {
		day, err := models.NormalizeDay(input.SaveAs, s.now())
		if err != nil {
			return nil, generatePlanOutput{}, err
		}
		saved, err := s.saveTraining(ctx, day, out.Exercises, out.GroupCounts)
		if err != nil {
			return nil, generatePlanOutput{}, err
		}
		out.Saved = saved
	}
	return nil, out, nil
}
