// FilePath: internal/models/models.composite.go
package models

import "time"

// DashboardHive pairs a public hive projection with its derived weight
// metric. WeightDelta is nil when enrichment failed or history is missing;
// the list itself still renders.
type DashboardHive struct {
	Hive        *Hive        `json:"hive"`
	WeightDelta *WeightDelta `json:"weight_delta,omitempty"`
}

// HiveHistory is the detail view payload: hive metadata, the readings of the
// selected window in chronological (ascending) order and the most recent
// reading as the current-status summary.
type HiveHistory struct {
	Hive        *Hive            `json:"hive"`
	DisplayName string           `json:"display_name"`
	Window      ReadingWindow    `json:"window"`
	Readings    []*SensorReading `json:"readings"`
	Latest      *SensorReading   `json:"latest,omitempty"`
}

// DashboardSnapshot is the cached public dashboard state.
type DashboardSnapshot struct {
	Hives       []*DashboardHive `json:"hives"`
	Summary     *ApiarySummary   `json:"summary"`
	RefreshedAt time.Time        `json:"refreshed_at"`
}
