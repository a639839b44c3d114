package cleanup

import (
	"context"
	"fmt"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// CleanupService coordinates deletion of hierarchical data: removing a hive
// cascades to its sensor readings.
type CleanupService struct {
	hives      repository.HiveRepository
	sensorData repository.SensorDataRepository
	events     *nuts.EventEmitter
}

// New creates a new CleanupService
func New(
	hives repository.HiveRepository,
	sensorData repository.SensorDataRepository,
) *CleanupService {
	return &CleanupService{
		hives:      hives,
		sensorData: sensorData,
		events:     nuts.NewEventEmitter(),
	}
}

// DeleteHive deletes a hive and all its readings. The readings live in a
// separate time-series store, so their removal runs in its own transaction
// before the hive row is deleted; a failure there leaves the hive intact.
func (s *CleanupService) DeleteHive(ctx context.Context, hiveUniqueID string) error {
	tx, err := s.sensorData.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Will be ignored if transaction is committed

	if err := s.sensorData.DeleteByHive(ctx, hiveUniqueID, tx); err != nil {
		return fmt.Errorf("failed to delete sensor readings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.events.Emit("readings.deleted", hiveUniqueID)

	if err := s.hives.Delete(ctx, hiveUniqueID); err != nil {
		return fmt.Errorf("failed to delete hive: %w", err)
	}

	s.events.Emit("hive.deleted", hiveUniqueID)
	return nil
}

// OnCleanup registers a callback for cleanup events
func (s *CleanupService) OnCleanup(event string, handler func(id string)) {
	s.events.On(event, "cleanup_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}
