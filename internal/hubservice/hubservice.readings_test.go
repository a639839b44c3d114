package hubservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
)

func seedHive(t *testing.T, svc *HubService, id string) {
	t.Helper()
	err := svc.CreateHive(context.Background(), &models.Hive{
		HiveUniqueID: id,
		Name:         "Alfa",
		Location:     "Campana",
	}, "user-1")
	require.NoError(t, err)
}

func TestGetHiveHistoryUnknownHive(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetHiveHistory(context.Background(), "ghost", models.ReadingFilters{})
	assert.True(t, errors.IsNotFound(err))
}

func TestGetHiveHistoryEmptyWindow(t *testing.T) {
	svc, _, _ := newTestService()
	seedHive(t, svc, "colmena_alfa")

	history, err := svc.GetHiveHistory(context.Background(), "colmena_alfa", models.ReadingFilters{})
	require.NoError(t, err)

	// A known hive with no readings is a valid, empty history, not an error.
	assert.Empty(t, history.Readings)
	assert.Nil(t, history.Latest)
	assert.Equal(t, models.WindowDay, history.Window)
	assert.Equal(t, "Alfa", history.DisplayName)
}

func TestGetHiveHistoryChronologicalOrder(t *testing.T) {
	svc, _, sensorData := newTestService()
	seedHive(t, svc, "colmena_alfa")

	now := time.Now()
	// Stored newest-first, as the real store returns them.
	sensorData.readings["colmena_alfa"] = []*models.SensorReading{
		{ID: 3, HiveUniqueID: "colmena_alfa", Weight: 31.0, CreatedAt: now},
		{ID: 2, HiveUniqueID: "colmena_alfa", Weight: 30.5, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 1, HiveUniqueID: "colmena_alfa", Weight: 30.0, CreatedAt: now.Add(-4 * time.Hour)},
	}

	history, err := svc.GetHiveHistory(context.Background(), "colmena_alfa", models.ReadingFilters{Window: models.WindowDay})
	require.NoError(t, err)

	require.Len(t, history.Readings, 3)
	assert.Equal(t, int64(1), history.Readings[0].ID)
	assert.Equal(t, int64(3), history.Readings[2].ID)
	require.NotNil(t, history.Latest)
	assert.Equal(t, int64(3), history.Latest.ID)
}

func TestGetHiveHistoryLimitOverridesWindow(t *testing.T) {
	svc, _, sensorData := newTestService()
	seedHive(t, svc, "colmena_alfa")

	now := time.Now()
	sensorData.readings["colmena_alfa"] = []*models.SensorReading{
		{ID: 3, CreatedAt: now},
		{ID: 2, CreatedAt: now.Add(-time.Hour)},
		{ID: 1, CreatedAt: now.Add(-2 * time.Hour)},
	}

	history, err := svc.GetHiveHistory(context.Background(), "colmena_alfa", models.ReadingFilters{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, sensorData.lastLimit)
	require.Len(t, history.Readings, 2)
	assert.Equal(t, int64(2), history.Readings[0].ID)
	assert.Equal(t, int64(3), history.Readings[1].ID)
}

func TestGetHiveHistoryQueryError(t *testing.T) {
	svc, _, sensorData := newTestService()
	seedHive(t, svc, "colmena_alfa")
	sensorData.listErr = errors.NewDatabaseError("query failed", nil)

	_, err := svc.GetHiveHistory(context.Background(), "colmena_alfa", models.ReadingFilters{})
	require.Error(t, err)
	assert.False(t, errors.IsNotFound(err))
}

func TestGetCurrentStatus(t *testing.T) {
	svc, _, sensorData := newTestService()
	seedHive(t, svc, "colmena_alfa")
	ctx := context.Background()

	// No readings yet: nil reading, no error.
	reading, err := svc.GetCurrentStatus(ctx, "colmena_alfa")
	require.NoError(t, err)
	assert.Nil(t, reading)

	sensorData.readings["colmena_alfa"] = []*models.SensorReading{
		{ID: 7, Weight: 30.2, CreatedAt: time.Now()},
	}
	reading, err = svc.GetCurrentStatus(ctx, "colmena_alfa")
	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, int64(7), reading.ID)

	_, err = svc.GetCurrentStatus(ctx, "ghost")
	assert.True(t, errors.IsNotFound(err))
}
