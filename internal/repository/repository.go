// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/database"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
)

// HiveRepository defines the interface for hive data operations.
// Implementations return APIError values from internal/errors: a missing row
// maps to a not-found error and a unique violation on the identifier maps to
// a conflict error.
type HiveRepository interface {
	database.Repository
	Create(ctx context.Context, hive *models.Hive) error
	Get(ctx context.Context, hiveUniqueID string) (*models.Hive, error)
	Update(ctx context.Context, hive *models.Hive) error
	Delete(ctx context.Context, hiveUniqueID string) error
	// ListPublic returns all hives ordered by name ascending (the public
	// dashboard ordering).
	ListPublic(ctx context.Context) ([]*models.Hive, error)
	// ListByOwner returns the given user's hives ordered by creation time
	// descending (the admin panel ordering).
	ListByOwner(ctx context.Context, userID string) ([]*models.Hive, error)
	Count(ctx context.Context) (int, error)
}

// SensorDataRepository defines the read-only interface over the time-series
// readings store plus the derived-metric queries. List methods return
// readings newest-first, the order the underlying store indexes by; callers
// that chart the data are responsible for reversing it.
type SensorDataRepository interface {
	database.Repository
	ListByHiveSince(ctx context.Context, hiveUniqueID string, since time.Time) ([]*models.SensorReading, error)
	ListRecent(ctx context.Context, hiveUniqueID string, limit int) ([]*models.SensorReading, error)
	Latest(ctx context.Context, hiveUniqueID string) (*models.SensorReading, error)
	DailyWeightChange(ctx context.Context, hiveUniqueID string) (*models.WeightDelta, error)
	ApiarySummary(ctx context.Context) (*models.ApiarySummary, error)
	DeleteByHive(ctx context.Context, hiveUniqueID string, tx database.Transaction) error
}
