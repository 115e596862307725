// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Drives tool handlers directly against a temp-dir store and catalog.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fitness/internal/catalog"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// setupTestServer creates a store and catalog in a temp directory.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "fitness-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.Open(filepath.Join(tmpDir, "fitness.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	lib, err := catalog.Load(filepath.Join(tmpDir, "fitness_library.json"))
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}
	for _, ex := range []models.Exercise{
		{Name: "Push-up", TargetMuscles: []string{"chest"}, Equipment: "none", Difficulty: 1},
		{Name: "Dip", TargetMuscles: []string{"chest", "triceps"}, Equipment: "bars", Difficulty: 2},
		{Name: "Squat", TargetMuscles: []string{"quads"}, Equipment: "barbell", Difficulty: 3},
	} {
		if _, err := lib.Add(ex); err != nil {
			t.Fatalf("Failed to add exercise: %v", err)
		}
	}

	server, err := NewServer(db, lib, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	server.now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	return server
}

func login(t *testing.T, s *Server, username string) {
	t.Helper()
	ctx := context.Background()
	creds := credentialsInput{Username: username, Password: "pw-" + username}
	if _, _, err := s.handleRegister(ctx, &mcp.CallToolRequest{}, creds); err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	if _, _, err := s.handleLogin(ctx, &mcp.CallToolRequest{}, creds); err != nil {
		t.Fatalf("login %s: %v", username, err)
	}
}

func TestNewServer(t *testing.T) {
	server := setupTestServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.repo == nil {
		t.Error("Expected non-nil repo")
	}

	if _, err := NewServer(nil, server.lib, zerolog.Nop()); err == nil {
		t.Error("Expected error for nil repository")
	}
	if _, err := NewServer(server.repo, nil, zerolog.Nop()); err == nil {
		t.Error("Expected error for nil catalog")
	}
}

func TestSessionTools(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleWhoami(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil || out.LoggedIn {
		t.Fatalf("whoami before login = %+v, %v", out, err)
	}

	login(t, server, "alice")

	_, out, err = server.handleWhoami(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil || !out.LoggedIn || out.Username != "alice" {
		t.Fatalf("whoami after login = %+v, %v", out, err)
	}

	_, out, err = server.handleLogout(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil || out.Message != "Logged out alice" {
		t.Errorf("logout = %+v, %v", out, err)
	}
	_, out, err = server.handleLogout(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil || out.Message != "No active session" {
		t.Errorf("second logout = %+v, %v", out, err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	creds := credentialsInput{Username: "alice", Password: "pw"}

	if _, _, err := server.handleRegister(ctx, &mcp.CallToolRequest{}, creds); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := server.handleRegister(ctx, &mcp.CallToolRequest{}, creds)
	if !errors.Is(err, models.ErrDuplicateUsername) {
		t.Errorf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	server := setupTestServer(t)
	login(t, server, "alice")

	_, _, err := server.handleLogin(context.Background(), &mcp.CallToolRequest{},
		credentialsInput{Username: "alice", Password: "nope"})
	if !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if who, ok := server.repo.CurrentUser(); !ok || who.Username != "alice" {
		t.Error("failed login should keep the existing session")
	}
}

func TestHandleSaveTrainingRecord(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, _, err := server.handleSaveTrainingRecord(ctx, &mcp.CallToolRequest{}, saveTrainingInput{
		Exercises: []string{"squat"}, GroupCounts: []int{3},
	})
	if !errors.Is(err, models.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated before login, got %v", err)
	}

	login(t, server, "alice")

	_, out, err := server.handleSaveTrainingRecord(ctx, &mcp.CallToolRequest{}, saveTrainingInput{
		Exercises: []string{"squat"}, GroupCounts: []int{3},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if out.Date != "20240310" || out.Result != "inserted" {
		t.Errorf("first save = %+v", out)
	}

	_, out, err = server.handleSaveTrainingRecord(ctx, &mcp.CallToolRequest{}, saveTrainingInput{
		Date: "2024-03-10", Exercises: []string{"squat"}, GroupCounts: []int{2},
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if out.Result != "merged" || !strings.Contains(out.Message, "2024-03-10") {
		t.Errorf("second save = %+v", out)
	}

	_, list, err := server.handleListTrainingRecords(ctx, &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	records := list.(map[string]any)["records"].([]models.TrainingRecord)
	if len(records) != 1 || records[0].GroupCounts[0] != 5 {
		t.Errorf("records = %+v", records)
	}
}

func TestHandleSaveTrainingRecordBadInput(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	login(t, server, "alice")

	if _, _, err := server.handleSaveTrainingRecord(ctx, &mcp.CallToolRequest{}, saveTrainingInput{
		Date: "next tuesday", Exercises: []string{"squat"}, GroupCounts: []int{1},
	}); err == nil {
		t.Error("expected error for unparseable date")
	}

	_, _, err := server.handleSaveTrainingRecord(ctx, &mcp.CallToolRequest{}, saveTrainingInput{
		Exercises: []string{"squat", "row"}, GroupCounts: []int{1},
	})
	if !errors.Is(err, models.ErrIntegrityViolation) {
		t.Errorf("expected ErrIntegrityViolation, got %v", err)
	}
}

func TestHandleSaveTrainingRecordValidatesEntries(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	login(t, server, "alice")

	tests := []struct {
		name  string
		input saveTrainingInput
		want  string
	}{
		{
			name:  "negative count",
			input: saveTrainingInput{Exercises: []string{"squat"}, GroupCounts: []int{-5}},
			want:  "group_counts[0] must be at least 0",
		},
		{
			name:  "empty name",
			input: saveTrainingInput{Exercises: []string{""}, GroupCounts: []int{1}},
			want:  "exercises[0] is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := server.handleSaveTrainingRecord(ctx, &mcp.CallToolRequest{}, tt.input)
			if !errors.Is(err, models.ErrIntegrityViolation) {
				t.Fatalf("expected ErrIntegrityViolation, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}

	_, list, err := server.handleListTrainingRecords(ctx, &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.(map[string]any)["message"] != "No training records found." {
		t.Errorf("rejected saves were stored: %+v", list)
	}
}

func TestHandleListEmpty(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	login(t, server, "alice")

	_, out, err := server.handleListTrainingRecords(ctx, &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("list training: %v", err)
	}
	if out.(map[string]any)["message"] != "No training records found." {
		t.Errorf("training = %+v", out)
	}

	_, out, err = server.handleListBodyStats(ctx, &mcp.CallToolRequest{}, listInput{})
	if err != nil {
		t.Fatalf("list body: %v", err)
	}
	if out.(map[string]any)["message"] != "No body stats found." {
		t.Errorf("body = %+v", out)
	}

	_, out, err = server.handleGetLatestBodyStats(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if out.(map[string]any)["message"] != "No body stats found." {
		t.Errorf("latest = %+v", out)
	}
}

func TestHandleBodyStats(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	login(t, server, "alice")

	fat := 18.0
	_, out, err := server.handleSaveBodyStats(ctx, &mcp.CallToolRequest{}, saveBodyInput{
		Date: "20240309", Height: 180, Weight: 80, BodyFat: &fat,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if out.ID <= 0 {
		t.Errorf("expected id, got %+v", out)
	}

	if _, _, err := server.handleSaveBodyStats(ctx, &mcp.CallToolRequest{}, saveBodyInput{
		Height: 180, Weight: 79,
	}); err != nil {
		t.Fatalf("save today: %v", err)
	}

	_, latest, err := server.handleGetLatestBodyStats(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	b := latest.(*models.BodyStats)
	if b.Timestamp != "20240310" || b.Weight != 79 || b.BodyFat != nil {
		t.Errorf("latest = %+v", b)
	}

	_, list, err := server.handleListBodyStats(ctx, &mcp.CallToolRequest{}, listInput{Limit: 5})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if stats := list.(map[string]any)["body_stats"].([]models.BodyStats); len(stats) != 2 {
		t.Errorf("expected 2 rows, got %d", len(stats))
	}
}

func TestHandleSearchExercises(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleSearchExercises(ctx, &mcp.CallToolRequest{}, searchInput{Keyword: "Chest"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if found := out.(map[string]any)["exercises"].([]models.Exercise); len(found) != 2 {
		t.Errorf("expected 2 chest exercises, got %d", len(found))
	}

	_, out, err = server.handleSearchExercises(ctx, &mcp.CallToolRequest{}, searchInput{Keyword: "kettlebell"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if out.(map[string]any)["message"] != "No matching exercises." {
		t.Errorf("empty search = %+v", out)
	}
}

func TestHandleGeneratePlan(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	_, out, err := server.handleGeneratePlan(ctx, &mcp.CallToolRequest{}, generatePlanInput{
		Minutes: 15, Muscle: "chest", MaxDifficulty: 2,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.Minutes != 15 || len(out.Slots) != 3 {
		t.Errorf("plan = %+v", out)
	}
	if strings.Join(out.Exercises, ",") != "Push-up,Dip" || out.GroupCounts[0] != 2 || out.GroupCounts[1] != 1 {
		t.Errorf("tally = %v %v", out.Exercises, out.GroupCounts)
	}
	if out.Saved != nil {
		t.Error("plan should not be saved without save_as")
	}

	_, _, err = server.handleGeneratePlan(ctx, &mcp.CallToolRequest{}, generatePlanInput{
		Minutes: 15, Muscle: "chest", MaxDifficulty: 2, SaveAs: "today",
	})
	if !errors.Is(err, models.ErrUnauthenticated) {
		t.Errorf("saving without login: expected ErrUnauthenticated, got %v", err)
	}

	login(t, server, "alice")
	_, out, err = server.handleGeneratePlan(ctx, &mcp.CallToolRequest{}, generatePlanInput{
		Minutes: 15, Muscle: "chest", MaxDifficulty: 2, SaveAs: "today",
	})
	if err != nil {
		t.Fatalf("generate and save: %v", err)
	}
	if out.Saved == nil || out.Saved.Date != "20240310" || out.Saved.Result != "inserted" {
		t.Errorf("saved = %+v", out.Saved)
	}
}

func TestHandleGeneratePlanNoMatch(t *testing.T) {
	server := setupTestServer(t)

	_, _, err := server.handleGeneratePlan(context.Background(), &mcp.CallToolRequest{}, generatePlanInput{
		Minutes: 10, Muscle: "calves", MaxDifficulty: 5,
	})
	if err == nil || !strings.Contains(err.Error(), "no exercise targets") {
		t.Errorf("expected no-match error, got %v", err)
	}
}

func TestHandleRecentTrainingResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()

	if _, err := server.handleRecentTrainingResource(ctx, &mcp.ReadResourceRequest{}); !errors.Is(err, models.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	login(t, server, "alice")
	if _, _, err := server.handleSaveTrainingRecord(ctx, &mcp.CallToolRequest{}, saveTrainingInput{
		Exercises: []string{"squat"}, GroupCounts: []int{3},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	result, err := server.handleRecentTrainingResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	c := result.Contents[0]
	if c.URI != "fitness://training/recent" {
		t.Errorf("URI = %s, want fitness://training/recent", c.URI)
	}
	if c.MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", c.MIMEType)
	}

	var body struct {
		Username string `json:"username"`
		Count    int    `json:"count"`
	}
	if err := json.Unmarshal([]byte(c.Text), &body); err != nil {
		t.Fatalf("resource is not JSON: %v", err)
	}
	if body.Username != "alice" || body.Count != 1 {
		t.Errorf("resource body = %+v", body)
	}
}

func TestHandleLatestBodyResource(t *testing.T) {
	server := setupTestServer(t)
	ctx := context.Background()
	login(t, server, "alice")

	result, err := server.handleLatestBodyResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, `"found": false`) {
		t.Errorf("expected found=false, got %s", result.Contents[0].Text)
	}

	if _, _, err := server.handleSaveBodyStats(ctx, &mcp.CallToolRequest{}, saveBodyInput{Height: 180, Weight: 80}); err != nil {
		t.Fatalf("save: %v", err)
	}
	result, err = server.handleLatestBodyResource(ctx, &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != "fitness://body/latest" || !strings.Contains(result.Contents[0].Text, `"found": true`) {
		t.Errorf("resource = %+v", result.Contents[0])
	}
}
