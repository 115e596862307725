// ABOUTME: Integration tests for the fitness CLI.
// ABOUTME: Builds the binary and drives a full session through it.
package test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	fitnessBinary := filepath.Join(projectRoot, "fitness")

	buildCmd := exec.Command("go", "build", "-o", fitnessBinary, "./cmd/fitness")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(fitnessBinary)

	// Isolated config, data and database
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmpDir, "config"),
		"XDG_DATA_HOME="+filepath.Join(tmpDir, "data"),
		"FITNESS_USER=alice",
		"FITNESS_PASSWORD=s3cret",
	)

	run := func(args ...string) (string, error) {
		fullArgs := append([]string{"--db", dbPath}, args...)
		cmd := exec.Command(fitnessBinary, fullArgs...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	output, err := run("register", "alice")
	if err != nil {
		t.Fatalf("Failed to register: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Registered alice") {
		t.Errorf("Expected 'Registered alice' in output, got: %s", output)
	}

	output, err = run("record", "add", "squat=3", "bench=4", "--date", "2024-03-01")
	if err != nil {
		t.Fatalf("Failed to add training: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Recorded 2024-03-01") {
		t.Errorf("Expected 'Recorded 2024-03-01' in output, got: %s", output)
	}

	output, err = run("record", "add", "squat=2", "--date", "20240301")
	if err != nil {
		t.Fatalf("Failed to merge training: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added to 2024-03-01") {
		t.Errorf("Expected 'Added to 2024-03-01' in output, got: %s", output)
	}

	output, err = run("record", "list")
	if err != nil {
		t.Fatalf("Failed to list training: %v\n%s", err, output)
	}
	if !strings.Contains(output, "squat×5, bench×4") {
		t.Errorf("Expected merged counts in list output, got: %s", output)
	}

	output, err = run("body", "add", "--height", "180", "--weight", "80.5", "--date", "2024-03-01")
	if err != nil {
		t.Fatalf("Failed to add body stats: %v\n%s", err, output)
	}

	output, err = run("body", "latest")
	if err != nil {
		t.Fatalf("Failed to get latest body stats: %v\n%s", err, output)
	}
	if !strings.Contains(output, "80.5") {
		t.Errorf("Expected weight in latest output, got: %s", output)
	}

	exportPath := filepath.Join(tmpDir, "backup.json")
	output, err = run("export", "json", "-o", exportPath)
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	raw, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	var export struct {
		Username string            `json:"username"`
		Training []json.RawMessage `json:"training"`
		Body     []json.RawMessage `json:"body_stats"`
	}
	if err := json.Unmarshal(raw, &export); err != nil {
		t.Fatalf("Export is not valid JSON: %v", err)
	}
	if export.Username != "alice" || len(export.Training) != 1 || len(export.Body) != 1 {
		t.Errorf("Unexpected export: %s", raw)
	}

	// A wrong password must not reach the data
	output, err = run("--password", "wrong", "record", "list")
	if err == nil {
		t.Errorf("Expected login failure, got: %s", output)
	}
}
