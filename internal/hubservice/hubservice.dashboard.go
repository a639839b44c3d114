package hubservice

import (
	"context"
	"sync"
	"time"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// publicRoles is the role set used for the unscoped dashboard projection;
// owner-scoped fields are stripped before a hive leaves the service.
var publicRoles = []string{"public"}

// dashboardState caches the last dashboard snapshot. Refreshes carry a
// generation token so a slow, older refresh can never overwrite the result
// of a newer one.
type dashboardState struct {
	mu         sync.Mutex
	snapshot   *models.DashboardSnapshot
	generation uint64
	nextGen    uint64
	refreshing bool
	stop       chan struct{}
	stopOnce   sync.Once
}

// ListDashboardHives builds the public dashboard list: all hives, name
// ascending, each enriched with its daily weight change. A failed enrichment
// degrades that hive's metric to unavailable instead of failing the list.
func (s *HubService) ListDashboardHives(ctx context.Context) ([]*models.DashboardHive, error) {
	hives, err := s.Hives.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*models.DashboardHive, 0, len(hives))
	for _, hive := range hives {
		public, err := filterHiveForRoles(hive, publicRoles)
		if err != nil {
			nuts.L.Warnf("[Dashboard] Failed to project hive %s: %v", hive.HiveUniqueID, err)
			continue
		}

		entry := &models.DashboardHive{Hive: public}
		delta, err := s.SensorData.DailyWeightChange(ctx, hive.HiveUniqueID)
		if err != nil {
			nuts.L.Warnf("[Dashboard] Weight delta unavailable for hive %s: %v", hive.HiveUniqueID, err)
		} else {
			entry.WeightDelta = delta
		}
		result = append(result, entry)
	}
	return result, nil
}

// GetApiarySummary returns the dashboard header metrics.
func (s *HubService) GetApiarySummary(ctx context.Context) (*models.ApiarySummary, error) {
	summary, err := s.SensorData.ApiarySummary(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.Hives.Count(ctx)
	if err != nil {
		return nil, err
	}
	summary.TotalHiveCount = count
	return summary, nil
}

// DashboardSnapshot returns the cached snapshot, or nil when no refresh has
// completed yet.
func (s *HubService) DashboardSnapshot() *models.DashboardSnapshot {
	s.dashboard.mu.Lock()
	defer s.dashboard.mu.Unlock()
	return s.dashboard.snapshot
}

// RefreshDashboard recomputes the dashboard snapshot. Overlapping refreshes
// coalesce (the second call returns immediately), and a refresh that loses
// the race to a newer one discards its result.
func (s *HubService) RefreshDashboard(ctx context.Context) error {
	s.dashboard.mu.Lock()
	if s.dashboard.refreshing {
		s.dashboard.mu.Unlock()
		return nil
	}
	s.dashboard.refreshing = true
	s.dashboard.nextGen++
	gen := s.dashboard.nextGen
	s.dashboard.mu.Unlock()

	defer func() {
		s.dashboard.mu.Lock()
		s.dashboard.refreshing = false
		s.dashboard.mu.Unlock()
	}()

	hives, err := s.ListDashboardHives(ctx)
	if err != nil {
		return err
	}
	summary, err := s.GetApiarySummary(ctx)
	if err != nil {
		return err
	}

	s.applyDashboardSnapshot(gen, &models.DashboardSnapshot{
		Hives:       hives,
		Summary:     summary,
		RefreshedAt: time.Now(),
	})
	return nil
}

// applyDashboardSnapshot stores a snapshot unless a newer generation already
// landed. Returns whether the snapshot was applied.
func (s *HubService) applyDashboardSnapshot(gen uint64, snap *models.DashboardSnapshot) bool {
	s.dashboard.mu.Lock()
	defer s.dashboard.mu.Unlock()
	if gen <= s.dashboard.generation {
		nuts.L.Debugf("[Dashboard] Discarding stale snapshot (generation %d <= %d)", gen, s.dashboard.generation)
		return false
	}
	s.dashboard.generation = gen
	s.dashboard.snapshot = snap
	return true
}

// StartDashboardRefresher recomputes the snapshot on a fixed interval until
// StopDashboardRefresher is called. Ticks that arrive while a refresh is in
// flight are skipped by RefreshDashboard's coalescing.
func (s *HubService) StartDashboardRefresher(interval time.Duration) {
	s.dashboard.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				if err := s.RefreshDashboard(ctx); err != nil {
					nuts.L.Errorf("[Dashboard] Snapshot refresh failed: %v", err)
				}
				cancel()
			case <-s.dashboard.stop:
				return
			}
		}
	}()
}

// StopDashboardRefresher stops the background refresh loop.
func (s *HubService) StopDashboardRefresher() {
	if s.dashboard.stop == nil {
		return
	}
	s.dashboard.stopOnce.Do(func() { close(s.dashboard.stop) })
}
