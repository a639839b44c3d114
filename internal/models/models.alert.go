// FilePath: internal/models/models.alert.go
package models

// Alert is the payload pushed by the database trigger when a sensor value
// crosses a configured threshold.
type Alert struct {
	HiveUniqueID   string   `json:"hive_unique_id"`
	AlertType      string   `json:"alert_type"`
	Message        string   `json:"message"`
	CurrentValue   *float64 `json:"current_value,omitempty"`
	ThresholdValue *float64 `json:"threshold_value,omitempty"`
}
