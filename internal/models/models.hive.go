// FilePath: internal/models/models.hive.go
package models

import (
	"fmt"
	"strings"
	"time"
)

// Hive is a monitored beehive unit. HiveUniqueID doubles as the primary key
// and the correlation key for the field-deployed sensor device; it is
// immutable once set.
type Hive struct {
	HiveUniqueID string    `json:"hive_unique_id" db:"hive_unique_id"`
	Name         string    `json:"name" db:"name"`
	Location     string    `json:"location" db:"location"`
	UserID       string    `json:"user_id,omitempty" db:"user_id" readxs:"owner,admin,system" writexs:"system"`
	Notes        string    `json:"notes,omitempty" db:"notes" readxs:"owner,admin,system" writexs:"owner,admin,system"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName returns the hive name, falling back to a label synthesized
// from the identifier when no name was set.
func (h *Hive) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return fmt.Sprintf("Colmena %s", h.HiveUniqueID)
}

// NormalizeHiveID converts a user-supplied hive identifier into the
// constrained format expected by the sensor devices: lower-cased, trimmed,
// internal whitespace collapsed to single underscores.
func NormalizeHiveID(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), "_")
}
