// FilePath: internal/repository/timescale/timescale.sensor_data.go
package timescale

import (
	"context"
	"database/sql"
	"time"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/database"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

type SensorDataRepo struct {
	db database.DB
}

func NewSensorDataRepository(db database.DB) (*SensorDataRepo, error) {
	repo := &SensorDataRepo{db: db}
	err := repo.initializeSchema()
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *SensorDataRepo) initializeSchema() error {
	// Create hypertable for the per-hive measurement batches. Rows are
	// inserted by the device ingestion path, never by this service.
	queries := []string{
		`CREATE TABLE IF NOT EXISTS sensor_data (
			id BIGSERIAL,
			hive_unique_id TEXT NOT NULL,
			temperature DOUBLE PRECISION NOT NULL,
			humidity DOUBLE PRECISION NOT NULL,
			weight DOUBLE PRECISION NOT NULL,
			sound_level INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`SELECT create_hypertable('sensor_data', 'created_at',
			chunk_time_interval => INTERVAL '1 day',
			if_not_exists => TRUE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sensor_data_hive_created
         ON sensor_data(hive_unique_id, created_at DESC)`,
	}

	for _, query := range queries {
		_, err := r.db.GetDB().Exec(query)
		if err != nil {
			return errors.NewDatabaseError("failed to initialize schema", err)
		}
	}
	return nil
}

func (r *SensorDataRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	tx, err := r.db.GetDB().BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to begin transaction", err)
	}
	return tx, nil
}

// ListByHiveSince returns the hive's readings at or after the cutoff,
// newest first.
func (r *SensorDataRepo) ListByHiveSince(ctx context.Context, hiveUniqueID string, since time.Time) ([]*models.SensorReading, error) {
	readings := []*models.SensorReading{}
	query := `
		SELECT id, hive_unique_id, temperature, humidity, weight, sound_level, created_at
		FROM sensor_data
		WHERE hive_unique_id = $1 AND created_at >= $2
		ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &readings, query, hiveUniqueID, since)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get sensor readings", err)
	}
	return readings, nil
}

// ListRecent returns the N most recent readings for the hive, newest first.
func (r *SensorDataRepo) ListRecent(ctx context.Context, hiveUniqueID string, limit int) ([]*models.SensorReading, error) {
	readings := []*models.SensorReading{}
	query := `
		SELECT id, hive_unique_id, temperature, humidity, weight, sound_level, created_at
		FROM sensor_data
		WHERE hive_unique_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	err := r.db.GetDB().SelectContext(ctx, &readings, query, hiveUniqueID, limit)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to get recent sensor readings", err)
	}
	return readings, nil
}

func (r *SensorDataRepo) Latest(ctx context.Context, hiveUniqueID string) (*models.SensorReading, error) {
	reading := &models.SensorReading{}
	query := `
		SELECT id, hive_unique_id, temperature, humidity, weight, sound_level, created_at
		FROM sensor_data
		WHERE hive_unique_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	err := r.db.GetDB().GetContext(ctx, reading, query, hiveUniqueID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("no readings for hive", err)
		}
		return nil, errors.NewDatabaseError("failed to get latest sensor reading", err)
	}
	return reading, nil
}

// DailyWeightChange computes the latest weight and its change against the
// most recent reading at least 24 hours older. Either field is NULL when the
// hive lacks the history to derive it.
func (r *SensorDataRepo) DailyWeightChange(ctx context.Context, hiveUniqueID string) (*models.WeightDelta, error) {
	delta := &models.WeightDelta{}
	query := `
		WITH latest AS (
			SELECT weight, created_at
			FROM sensor_data
			WHERE hive_unique_id = $1
			ORDER BY created_at DESC
			LIMIT 1
		), prior AS (
			SELECT weight
			FROM sensor_data
			WHERE hive_unique_id = $1
			  AND created_at <= (SELECT created_at FROM latest) - INTERVAL '24 hours'
			ORDER BY created_at DESC
			LIMIT 1
		)
		SELECT latest.weight AS latest_weight,
		       latest.weight - prior.weight AS change
		FROM latest
		LEFT JOIN prior ON TRUE`

	err := r.db.GetDB().GetContext(ctx, delta, query, hiveUniqueID)
	if err != nil {
		if err == sql.ErrNoRows {
			// No readings at all: the metric degrades to unavailable.
			return &models.WeightDelta{}, nil
		}
		return nil, errors.NewDatabaseError("failed to compute daily weight change", err)
	}
	return delta, nil
}

// ApiarySummary aggregates the dashboard header metrics: net weight change
// over the trailing 7 days summed across hives, and 24h temperature and
// humidity averages. TotalHiveCount is filled in by the service from the
// hive store.
func (r *SensorDataRepo) ApiarySummary(ctx context.Context) (*models.ApiarySummary, error) {
	summary := &models.ApiarySummary{}

	weightQuery := `
		WITH per_hive AS (
			SELECT DISTINCT ON (hive_unique_id) hive_unique_id,
				weight AS latest_weight,
				(
					SELECT weight FROM sensor_data old
					WHERE old.hive_unique_id = sd.hive_unique_id
					  AND old.created_at <= NOW() - INTERVAL '7 days'
					ORDER BY old.created_at DESC
					LIMIT 1
				) AS prior_weight
			FROM sensor_data sd
			ORDER BY hive_unique_id, created_at DESC
		)
		SELECT SUM(latest_weight - prior_weight) AS total_net_weight_change_7d
		FROM per_hive
		WHERE prior_weight IS NOT NULL`

	err := r.db.GetDB().GetContext(ctx, &summary.NetWeightChange7d, weightQuery)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.NewDatabaseError("failed to compute net weight change", err)
	}

	avgQuery := `
		SELECT AVG(temperature) AS avg_temp_apiary,
		       AVG(humidity) AS avg_humidity_apiary
		FROM sensor_data
		WHERE created_at >= NOW() - INTERVAL '24 hours'`

	row := struct {
		AvgTemp     *float64 `db:"avg_temp_apiary"`
		AvgHumidity *float64 `db:"avg_humidity_apiary"`
	}{}
	err = r.db.GetDB().GetContext(ctx, &row, avgQuery)
	if err != nil && err != sql.ErrNoRows {
		return nil, errors.NewDatabaseError("failed to compute apiary averages", err)
	}
	summary.AvgTemperatureApiary = row.AvgTemp
	summary.AvgHumidityApiary = row.AvgHumidity

	return summary, nil
}

// DeleteByHive removes all readings for a hive, as part of the cascading
// hive deletion.
func (r *SensorDataRepo) DeleteByHive(ctx context.Context, hiveUniqueID string, tx database.Transaction) error {
	query := `DELETE FROM sensor_data WHERE hive_unique_id = $1`

	var (
		result sql.Result
		err    error
	)
	if tx != nil {
		result, err = tx.ExecContext(ctx, query, hiveUniqueID)
	} else {
		result, err = r.db.GetDB().ExecContext(ctx, query, hiveUniqueID)
	}
	if err != nil {
		return errors.NewDatabaseError("failed to delete sensor readings", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	nuts.L.Infof("[TimescaleDB] Deleted %d readings for hive %s", rows, hiveUniqueID)
	return nil
}
