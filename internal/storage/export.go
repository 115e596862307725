// ABOUTME: Export and import of the current user's fitness data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; imports JSON.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"gopkg.in/yaml.v3"
)

// exportVersion is bumped when ExportData changes shape.
const exportVersion = "1.0"

// ExportData represents the full export format for one user.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Username   string                  `json:"username" yaml:"username"`
	Training   []models.TrainingRecord `json:"training" yaml:"training"`
	BodyStats  []models.BodyStats      `json:"body_stats" yaml:"body_stats"`
}

// GetAllData retrieves the current user's complete history.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	const op = "export data"
	who, err := d.requireSession(op)
	if err != nil {
		return nil, err
	}

	training, err := d.trainingRecords(ctx, op, who.UserID, -1)
	if err != nil {
		return nil, fmt.Errorf("list training records: %w", err)
	}
	body, err := d.bodyStats(ctx, op, who.UserID, -1)
	if err != nil {
		return nil, fmt.Errorf("list body stats: %w", err)
	}

	return &ExportData{
		Version:    exportVersion,
		ExportedAt: d.now().UTC(),
		Tool:       "fitness",
		Username:   who.Username,
		Training:   training,
		BodyStats:  body,
	}, nil
}

// ImportData replays an export into the current user's ledgers with the
// normal merge policies: training days merge, body stats overwrite. The
// export's username is ignored. The whole import is one transaction, so a
// failure leaves the store as it was.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	const op = "import data"
	who, err := d.requireSession(op)
	if err != nil {
		return err
	}
	if data == nil {
		return fmt.Errorf("%s: %w: no data given", op, models.ErrIntegrityViolation)
	}

	tallies := make([]*models.Tally, len(data.Training))
	for i, r := range data.Training {
		if tallies[i], err = models.TallyOf(r.Exercises, r.GroupCounts); err != nil {
			return fmt.Errorf("%s: training record %s: %w", op, r.Timestamp, err)
		}
	}

	err = d.withTx(ctx, op, func(tx *sql.Tx) error {
		// Exports list training newest first; replay oldest first so creation
		// order survives the round trip.
		for i := len(data.Training) - 1; i >= 0; i-- {
			r := data.Training[i]
			if _, err := d.mergeTraining(ctx, tx, who.UserID, r.Timestamp, tallies[i]); err != nil {
				return fmt.Errorf("training record %s: %w", r.Timestamp, err)
			}
		}
		for _, b := range data.BodyStats {
			in := &models.BodyStatsInput{
				Timestamp:          b.Timestamp,
				Height:             b.Height,
				Weight:             b.Weight,
				BodyFat:            b.BodyFat,
				BasalMetabolicRate: b.BasalMetabolicRate,
			}
			if _, err := d.upsertBody(ctx, tx, who.UserID, in); err != nil {
				return fmt.Errorf("body stats %s: %w", b.Timestamp, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	d.log.Info().
		Str("username", who.Username).
		Int("training", len(data.Training)).
		Int("body_stats", len(data.BodyStats)).
		Msg("import complete")
	return nil
}

// ExportJSON exports all data as JSON.
func (d *DB) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML, with training days keyed by date.
func (d *DB) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string         `yaml:"version"`
		ExportedAt string         `yaml:"exported_at"`
		Tool       string         `yaml:"tool"`
		Username   string         `yaml:"username"`
		Training   []yamlTraining `yaml:"training"`
		BodyStats  []yamlBody     `yaml:"body_stats"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Username:   data.Username,
		Training:   make([]yamlTraining, 0, len(data.Training)),
		BodyStats:  make([]yamlBody, 0, len(data.BodyStats)),
	}

	for _, r := range data.Training {
		yt := yamlTraining{Date: models.DisplayDay(r.Timestamp)}
		for i, name := range r.Exercises {
			yt.Exercises = append(yt.Exercises, yamlExercise{Name: name, Groups: r.GroupCounts[i]})
		}
		yamlData.Training = append(yamlData.Training, yt)
	}

	for _, b := range data.BodyStats {
		yamlData.BodyStats = append(yamlData.BodyStats, yamlBody{
			Date:               models.DisplayDay(b.Timestamp),
			Height:             b.Height,
			Weight:             b.Weight,
			BodyFat:            b.BodyFat,
			BasalMetabolicRate: b.BasalMetabolicRate,
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlTraining struct {
	Date      string         `yaml:"date"`
	Exercises []yamlExercise `yaml:"exercises"`
}

type yamlExercise struct {
	Name   string `yaml:"name"`
	Groups int    `yaml:"groups"`
}

type yamlBody struct {
	Date               string   `yaml:"date"`
	Height             float64  `yaml:"height"`
	Weight             float64  `yaml:"weight"`
	BodyFat            *float64 `yaml:"body_fat,omitempty"`
	BasalMetabolicRate *float64 `yaml:"basal_metabolic_rate,omitempty"`
}

// ExportMarkdown exports data as Markdown tables. With since set, days before
// it (a day key) are left out.
func (d *DB) ExportMarkdown(ctx context.Context, since string) (string, error) {
	data, err := d.GetAllData(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Fitness Export - %s\n\n", data.Username))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", data.ExportedAt.Format(time.RFC3339)))

	sb.WriteString("## Training\n\n")
	sb.WriteString("| Date | Exercise | Groups |\n")
	sb.WriteString("|------|----------|--------|\n")
	for _, r := range data.Training {
		if since != "" && r.Timestamp < since {
			continue
		}
		for i, name := range r.Exercises {
			sb.WriteString(fmt.Sprintf("| %s | %s | %d |\n",
				models.DisplayDay(r.Timestamp), name, r.GroupCounts[i]))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("## Body Stats\n\n")
	sb.WriteString("| Date | Height | Weight | Body Fat | BMR |\n")
	sb.WriteString("|------|--------|--------|----------|-----|\n")
	for _, b := range data.BodyStats {
		if since != "" && b.Timestamp < since {
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %.1f | %.1f | %s | %s |\n",
			models.DisplayDay(b.Timestamp), b.Height, b.Weight,
			optional(b.BodyFat), optional(b.BasalMetabolicRate)))
	}

	return sb.String(), nil
}

func optional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

// ImportJSON imports data from JSON bytes.
func (d *DB) ImportJSON(ctx context.Context, data []byte) error {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return d.ImportData(ctx, &exportData)
}
