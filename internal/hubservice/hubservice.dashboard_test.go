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

func TestListDashboardHivesEnrichment(t *testing.T) {
	svc, _, sensorData := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateHive(ctx, &models.Hive{HiveUniqueID: "beta", Name: "Beta", Location: "x"}, "user-1"))
	require.NoError(t, svc.CreateHive(ctx, &models.Hive{HiveUniqueID: "alfa", Name: "Alfa", Location: "x"}, "user-1"))

	sensorData.deltas["alfa"] = &models.WeightDelta{
		LatestWeight: floatPtr(30.2),
		Change:       floatPtr(0.7),
	}
	sensorData.deltaErrs["beta"] = errors.NewDatabaseError("timescale down", nil)

	hives, err := svc.ListDashboardHives(ctx)
	require.NoError(t, err)
	require.Len(t, hives, 2)

	// Name ascending, per the public ordering.
	assert.Equal(t, "Alfa", hives[0].Hive.Name)
	assert.Equal(t, "Beta", hives[1].Hive.Name)

	require.NotNil(t, hives[0].WeightDelta)
	assert.Equal(t, 0.7, *hives[0].WeightDelta.Change)

	// A failed enrichment degrades that hive's metric, never the list.
	assert.Nil(t, hives[1].WeightDelta)
}

func TestListDashboardHivesPublicProjection(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateHive(ctx, &models.Hive{
		HiveUniqueID: "alfa", Name: "Alfa", Location: "x", Notes: "secret",
	}, "user-1"))

	hives, err := svc.ListDashboardHives(ctx)
	require.NoError(t, err)
	require.Len(t, hives, 1)

	assert.Empty(t, hives[0].Hive.UserID)
	assert.Empty(t, hives[0].Hive.Notes)
	assert.Equal(t, "Alfa", hives[0].Hive.Name)
}

func TestGetApiarySummary(t *testing.T) {
	svc, _, sensorData := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateHive(ctx, &models.Hive{HiveUniqueID: "alfa", Name: "Alfa", Location: "x"}, "user-1"))
	require.NoError(t, svc.CreateHive(ctx, &models.Hive{HiveUniqueID: "beta", Name: "Beta", Location: "x"}, "user-1"))
	sensorData.summary = &models.ApiarySummary{
		NetWeightChange7d:    floatPtr(2.4),
		AvgTemperatureApiary: floatPtr(34.1),
	}

	summary, err := svc.GetApiarySummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalHiveCount)
	assert.Equal(t, 2.4, *summary.NetWeightChange7d)
	assert.Nil(t, summary.AvgHumidityApiary)
}

func TestRefreshDashboardBuildsSnapshot(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.CreateHive(ctx, &models.Hive{HiveUniqueID: "alfa", Name: "Alfa", Location: "x"}, "user-1"))

	assert.Nil(t, svc.DashboardSnapshot())

	require.NoError(t, svc.RefreshDashboard(ctx))

	snap := svc.DashboardSnapshot()
	require.NotNil(t, snap)
	assert.Len(t, snap.Hives, 1)
	require.NotNil(t, snap.Summary)
	assert.Equal(t, 1, snap.Summary.TotalHiveCount)
	assert.False(t, snap.RefreshedAt.IsZero())
}

func TestApplyDashboardSnapshotDiscardsStale(t *testing.T) {
	svc, _, _ := newTestService()

	newer := &models.DashboardSnapshot{RefreshedAt: time.Now()}
	older := &models.DashboardSnapshot{RefreshedAt: time.Now().Add(-time.Minute)}

	assert.True(t, svc.applyDashboardSnapshot(2, newer))

	// A slower refresh with an older generation loses the race and its
	// result is discarded.
	assert.False(t, svc.applyDashboardSnapshot(1, older))
	assert.Same(t, newer, svc.DashboardSnapshot())

	assert.True(t, svc.applyDashboardSnapshot(3, older))
	assert.Same(t, older, svc.DashboardSnapshot())
}

func TestRefreshDashboardPropagatesListError(t *testing.T) {
	svc, hives, _ := newTestService()
	hives.listErr = errors.NewDatabaseError("connection lost", nil)

	err := svc.RefreshDashboard(context.Background())
	require.Error(t, err)
	assert.Nil(t, svc.DashboardSnapshot())
}
