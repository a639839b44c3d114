package hubservice

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/database"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
)

// In-memory repository fakes. The sensor data fake stores readings
// newest-first, like the real store returns them.

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, nil
}

type fakeHiveRepo struct {
	hives     map[string]*models.Hive
	createErr error
	getErr    error
	listErr   error
	deleted   []string
}

func newFakeHiveRepo() *fakeHiveRepo {
	return &fakeHiveRepo{hives: make(map[string]*models.Hive)}
}

func (r *fakeHiveRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return &fakeTx{}, nil
}

func (r *fakeHiveRepo) Create(ctx context.Context, hive *models.Hive) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.hives[hive.HiveUniqueID]; exists {
		return errors.NewConflictError("hive already exists", nil)
	}
	stored := *hive
	r.hives[hive.HiveUniqueID] = &stored
	return nil
}

func (r *fakeHiveRepo) Get(ctx context.Context, hiveUniqueID string) (*models.Hive, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	hive, ok := r.hives[hiveUniqueID]
	if !ok {
		return nil, errors.NewNotFoundError("hive not found", nil)
	}
	copied := *hive
	return &copied, nil
}

func (r *fakeHiveRepo) Update(ctx context.Context, hive *models.Hive) error {
	if _, ok := r.hives[hive.HiveUniqueID]; !ok {
		return errors.NewNotFoundError("hive not found", nil)
	}
	stored := *hive
	r.hives[hive.HiveUniqueID] = &stored
	return nil
}

func (r *fakeHiveRepo) Delete(ctx context.Context, hiveUniqueID string) error {
	if _, ok := r.hives[hiveUniqueID]; !ok {
		return errors.NewNotFoundError("hive not found", nil)
	}
	delete(r.hives, hiveUniqueID)
	r.deleted = append(r.deleted, hiveUniqueID)
	return nil
}

func (r *fakeHiveRepo) ListPublic(ctx context.Context) ([]*models.Hive, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	result := make([]*models.Hive, 0, len(r.hives))
	for _, hive := range r.hives {
		copied := *hive
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeHiveRepo) ListByOwner(ctx context.Context, userID string) ([]*models.Hive, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	result := make([]*models.Hive, 0)
	for _, hive := range r.hives {
		if hive.UserID == userID {
			copied := *hive
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeHiveRepo) Count(ctx context.Context) (int, error) {
	return len(r.hives), nil
}

type fakeSensorDataRepo struct {
	readings   map[string][]*models.SensorReading
	deltas     map[string]*models.WeightDelta
	deltaErrs  map[string]error
	summary    *models.ApiarySummary
	summaryErr error
	listErr    error
	latestErr  error

	lastLimit int
	purged    []string
	lastTx    database.Transaction
}

func newFakeSensorDataRepo() *fakeSensorDataRepo {
	return &fakeSensorDataRepo{
		readings:  make(map[string][]*models.SensorReading),
		deltas:    make(map[string]*models.WeightDelta),
		deltaErrs: make(map[string]error),
		summary:   &models.ApiarySummary{},
	}
}

func (r *fakeSensorDataRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx := &fakeTx{}
	r.lastTx = tx
	return tx, nil
}

func (r *fakeSensorDataRepo) ListByHiveSince(ctx context.Context, hiveUniqueID string, since time.Time) ([]*models.SensorReading, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	result := make([]*models.SensorReading, 0)
	for _, reading := range r.readings[hiveUniqueID] {
		if reading.CreatedAt.After(since) {
			result = append(result, reading)
		}
	}
	return result, nil
}

func (r *fakeSensorDataRepo) ListRecent(ctx context.Context, hiveUniqueID string, limit int) ([]*models.SensorReading, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.lastLimit = limit
	all := r.readings[hiveUniqueID]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeSensorDataRepo) Latest(ctx context.Context, hiveUniqueID string) (*models.SensorReading, error) {
	if r.latestErr != nil {
		return nil, r.latestErr
	}
	all := r.readings[hiveUniqueID]
	if len(all) == 0 {
		return nil, errors.NewNotFoundError("no readings for hive", nil)
	}
	return all[0], nil
}

func (r *fakeSensorDataRepo) DailyWeightChange(ctx context.Context, hiveUniqueID string) (*models.WeightDelta, error) {
	if err := r.deltaErrs[hiveUniqueID]; err != nil {
		return nil, err
	}
	if delta, ok := r.deltas[hiveUniqueID]; ok {
		return delta, nil
	}
	return &models.WeightDelta{}, nil
}

func (r *fakeSensorDataRepo) ApiarySummary(ctx context.Context) (*models.ApiarySummary, error) {
	if r.summaryErr != nil {
		return nil, r.summaryErr
	}
	copied := *r.summary
	return &copied, nil
}

func (r *fakeSensorDataRepo) DeleteByHive(ctx context.Context, hiveUniqueID string, tx database.Transaction) error {
	r.purged = append(r.purged, hiveUniqueID)
	delete(r.readings, hiveUniqueID)
	return nil
}

func newTestService() (*HubService, *fakeHiveRepo, *fakeSensorDataRepo) {
	hives := newFakeHiveRepo()
	sensorData := newFakeSensorDataRepo()
	return New(hives, sensorData), hives, sensorData
}

func floatPtr(v float64) *float64 {
	return &v
}
