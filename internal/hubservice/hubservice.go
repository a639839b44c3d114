package hubservice

import (
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/cleanup"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/repository"
)

// HubService contains all repositories and service-wide dependencies.
// Dependencies are passed in explicitly so tests can substitute fakes.
type HubService struct {
	Hives      repository.HiveRepository
	SensorData repository.SensorDataRepository
	Cleanup    *cleanup.CleanupService

	dashboard dashboardState
}

// New creates a new HubService instance
func New(
	hives repository.HiveRepository,
	sensorData repository.SensorDataRepository,
) *HubService {
	svc := &HubService{
		Hives:      hives,
		SensorData: sensorData,
	}
	svc.Cleanup = cleanup.New(hives, sensorData)
	return svc
}

// Validate checks if all required repositories are initialized
func (s *HubService) Validate() error {
	if s.Hives == nil {
		return ErrMissingRepository("hives")
	}
	if s.SensorData == nil {
		return ErrMissingRepository("sensorData")
	}
	return nil
}

func ErrMissingRepository(name string) error {
	return errors.NewInternalError("missing repository: "+name, nil)
}
