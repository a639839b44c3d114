// FilePath: internal/models/models.sensor_data.go
package models

import "time"

// SensorReading is one timestamped measurement batch from a hive's device.
// Readings are append-only and created exclusively by the ingestion path;
// this service only ever reads them.
type SensorReading struct {
	ID           int64     `json:"id" db:"id"`
	HiveUniqueID string    `json:"hive_unique_id" db:"hive_unique_id"`
	Temperature  float64   `json:"temperature" db:"temperature"`
	Humidity     float64   `json:"humidity" db:"humidity"`
	Weight       float64   `json:"weight" db:"weight"`
	SoundLevel   int       `json:"sound_level" db:"sound_level"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// WeightDelta is the derived change in weight over a trailing ~24h window.
// Both fields are nil when the hive has insufficient history.
type WeightDelta struct {
	LatestWeight *float64 `json:"latest_weight" db:"latest_weight"`
	Change       *float64 `json:"change" db:"change"`
}

// ApiarySummary aggregates analytics across all hives for the dashboard
// header: total hive count, net weight change over 7 days and recent
// temperature/humidity averages.
type ApiarySummary struct {
	TotalHiveCount       int      `json:"total_hive_count" db:"total_hive_count"`
	NetWeightChange7d    *float64 `json:"total_net_weight_change_7d" db:"total_net_weight_change_7d"`
	AvgTemperatureApiary *float64 `json:"avg_temp_apiary" db:"avg_temp_apiary"`
	AvgHumidityApiary    *float64 `json:"avg_humidity_apiary" db:"avg_humidity_apiary"`
}
