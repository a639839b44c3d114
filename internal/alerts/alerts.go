// FilePath: internal/alerts/alerts.go
package alerts

import (
	"context"
	"encoding/json"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

// Service receives threshold alerts pushed by the database trigger,
// validates their shape, logs them and relays them to a Redis channel.
// Actual notification dispatch (email, SMS) subscribes to that channel; no
// delivery guarantee is implied here.
type Service struct {
	rdb     *redis.Client
	channel string
}

// New creates the alert intake service. rdb may be nil, which reduces the
// relay to logging.
func New(rdb *redis.Client, channel string) *Service {
	return &Service{rdb: rdb, channel: channel}
}

// Submit validates and relays one alert.
func (s *Service) Submit(ctx context.Context, alert *models.Alert) error {
	if alert == nil || alert.HiveUniqueID == "" || alert.AlertType == "" {
		return errors.NewValidationError("alert is missing required fields", nil)
	}

	nuts.L.Warnf("[Alerts] %s alert for hive %s: %s (value=%v, threshold=%v)",
		alert.AlertType, alert.HiveUniqueID, alert.Message,
		floatOrNA(alert.CurrentValue), floatOrNA(alert.ThresholdValue))

	if s.rdb == nil {
		return nil
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return errors.NewInternalError("failed to encode alert", err)
	}
	if err := s.rdb.Publish(ctx, s.channel, payload).Err(); err != nil {
		// The intake contract is validate-log-acknowledge; a failed relay
		// is logged but does not reject the alert.
		nuts.L.Errorf("[Alerts] Failed to relay alert for hive %s: %v", alert.HiveUniqueID, err)
	}
	return nil
}

func floatOrNA(v *float64) interface{} {
	if v == nil {
		return "n/a"
	}
	return *v
}
