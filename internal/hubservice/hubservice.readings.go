package hubservice

import (
	"context"
	"time"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
)

// GetHiveHistory resolves the detail/history view for one hive: metadata,
// the readings of the selected window in chronological order and the most
// recent reading as the current-status summary.
//
// The three terminal states stay distinct: an unknown identifier returns a
// not-found error, a known hive with no readings in the window returns an
// empty (but valid) history, and a failed query returns the underlying
// error.
func (s *HubService) GetHiveHistory(ctx context.Context, hiveUniqueID string, filters models.ReadingFilters) (*models.HiveHistory, error) {
	hive, err := s.Hives.Get(ctx, hiveUniqueID)
	if err != nil {
		return nil, err
	}

	filters.Normalize()

	var readings []*models.SensorReading
	if filters.Limit > 0 {
		readings, err = s.SensorData.ListRecent(ctx, hiveUniqueID, filters.Limit)
	} else {
		window, _ := filters.Window.Duration()
		readings, err = s.SensorData.ListByHiveSince(ctx, hiveUniqueID, time.Now().Add(-window))
	}
	if err != nil {
		return nil, err
	}

	// The store returns readings newest-first; charts and tables need them
	// in ascending timestamp order. This reversal is a required step, not a
	// side effect of the query.
	reverseReadings(readings)

	history := &models.HiveHistory{
		Hive:        hive,
		DisplayName: hive.DisplayName(),
		Window:      filters.Window,
		Readings:    readings,
	}
	if len(readings) > 0 {
		history.Latest = readings[len(readings)-1]
	}
	return history, nil
}

// GetCurrentStatus returns the most recent reading for a hive. A hive with
// no readings yet yields a nil reading, not an error.
func (s *HubService) GetCurrentStatus(ctx context.Context, hiveUniqueID string) (*models.SensorReading, error) {
	if _, err := s.Hives.Get(ctx, hiveUniqueID); err != nil {
		return nil, err
	}

	reading, err := s.SensorData.Latest(ctx, hiveUniqueID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return reading, nil
}

func reverseReadings(readings []*models.SensorReading) {
	for i, j := 0, len(readings)-1; i < j; i, j = i+1, j-1 {
		readings[i], readings[j] = readings[j], readings[i]
	}
}
