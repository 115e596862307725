// ABOUTME: Repository interface for the session-scoped fitness store.
// ABOUTME: Defines the contract for credentials, session, and both ledgers.
package storage

import (
	"context"

	"github.com/harperreed/fitness/internal/auth"
	"github.com/harperreed/fitness/internal/models"
)

// Repository defines the storage interface for fitness data.
// The MCP server and CLI depend on it rather than on *DB.
type Repository interface {
	// Credentials and session
	Register(ctx context.Context, username, password string) (int64, error)
	Verify(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password string) (auth.Identity, error)
	Logout()
	CurrentUser() (auth.Identity, bool)

	// Training ledger
	SaveTrainingRecord(ctx context.Context, timestamp string, exercises []string, counts []int) (models.SaveOutcome, error)
	GetTrainingRecords(ctx context.Context, limit int) ([]models.TrainingRecord, error)

	// Body metrics ledger
	SaveBodyStats(ctx context.Context, in *models.BodyStatsInput) (int64, error)
	GetBodyStatsHistory(ctx context.Context, limit int) ([]models.BodyStats, error)
	GetLatestBodyStats(ctx context.Context) (*models.BodyStats, bool, error)

	// Export/Import
	GetAllData(ctx context.Context) (*ExportData, error)
	ImportData(ctx context.Context, data *ExportData) error

	// Lifecycle
	Close() error
}

var _ Repository = (*DB)(nil)
