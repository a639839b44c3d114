package hubservice

import (
	"context"
	"fmt"
	"time"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	"github.com/itsatony/struccy"
	nuts "github.com/vaudience/go-nuts"
)

// HiveService handles hive-related business logic
type HiveService interface {
	CreateHive(ctx context.Context, hive *models.Hive, ownerID string) error
	GetHive(ctx context.Context, hiveUniqueID string, roles []string) (*models.Hive, error)
	UpdateHive(ctx context.Context, hive *models.Hive, roles []string) error
	DeleteHive(ctx context.Context, hiveUniqueID string) error
	ListHivesByOwner(ctx context.Context, userID string) ([]*models.Hive, error)
}

// CreateHive validates and stores a new hive owned by the given identity.
// A user-supplied identifier is normalized to the device format; when none
// is supplied one is generated. A duplicate identifier surfaces as a
// conflict error distinct from generic failure.
func (s *HubService) CreateHive(ctx context.Context, hive *models.Hive, ownerID string) error {
	if hive.Name == "" {
		return errors.NewValidationError("hive name is required", nil)
	}
	if hive.Location == "" {
		return errors.NewValidationError("hive location is required", nil)
	}
	if ownerID == "" {
		return errors.NewAuthError("owner identity is required", nil)
	}

	if hive.HiveUniqueID == "" {
		hive.HiveUniqueID = nuts.NID("col", 12)
	} else {
		hive.HiveUniqueID = models.NormalizeHiveID(hive.HiveUniqueID)
		if hive.HiveUniqueID == "" {
			return errors.NewValidationError("hive identifier is empty after normalization", nil)
		}
	}

	// Owner is fixed at creation time; it scopes visibility from here on.
	hive.UserID = ownerID

	now := time.Now()
	hive.CreatedAt = now
	hive.UpdatedAt = now

	nuts.L.Infof("[HiveService] Creating new hive: %s (%s)", hive.Name, hive.HiveUniqueID)
	err := s.Hives.Create(ctx, hive)
	if err != nil {
		if errors.IsConflict(err) {
			return errors.NewConflictError(
				fmt.Sprintf("hive %q already exists", hive.HiveUniqueID), err)
		}
		return err
	}
	return nil
}

// GetHive retrieves a hive with role-based field filtering
func (s *HubService) GetHive(ctx context.Context, hiveUniqueID string, roles []string) (*models.Hive, error) {
	hive, err := s.Hives.Get(ctx, hiveUniqueID)
	if err != nil {
		return nil, err
	}
	return filterHiveForRoles(hive, roles)
}

// UpdateHive loads the stored hive and merges the editable fields in. The
// identifier and owner reference never change; role access tags decide which
// of the remaining fields the caller may write.
func (s *HubService) UpdateHive(ctx context.Context, hive *models.Hive, roles []string) error {
	existing, err := s.Hives.Get(ctx, hive.HiveUniqueID)
	if err != nil {
		return err
	}

	// Merge the editable, role-writable fields into the stored hive; zero
	// values in the request leave the stored value untouched.
	hive.UserID = ""
	updatedFields, _, err := struccy.UpdateStructFields(existing, hive, roles, true, true)
	if err != nil {
		return errors.NewAuthorizationError("unauthorized field update", err)
	}

	existing.UpdatedAt = time.Now()

	nuts.L.Infof("[HiveService] Updating hive %s, fields changed: %v", existing.HiveUniqueID, updatedFields)
	return s.Hives.Update(ctx, existing)
}

// DeleteHive removes a hive and cascades the removal of its readings.
func (s *HubService) DeleteHive(ctx context.Context, hiveUniqueID string) error {
	// Verify existence first so a missing hive reports not-found rather
	// than a silent no-op.
	if _, err := s.Hives.Get(ctx, hiveUniqueID); err != nil {
		return err
	}

	nuts.L.Infof("[HiveService] Deleting hive: %s", hiveUniqueID)
	return s.Cleanup.DeleteHive(ctx, hiveUniqueID)
}

// ListHivesByOwner retrieves the admin panel list: the caller's own hives,
// newest first.
func (s *HubService) ListHivesByOwner(ctx context.Context, userID string) ([]*models.Hive, error) {
	if userID == "" {
		return nil, errors.NewAuthError("owner identity is required", nil)
	}
	return s.Hives.ListByOwner(ctx, userID)
}

// filterHiveForRoles strips fields the given roles may not read.
func filterHiveForRoles(hive *models.Hive, roles []string) (*models.Hive, error) {
	filteredMap, err := struccy.StructToMapFieldsWithReadXS(hive, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to filter hive fields", err)
	}
	filtered := &models.Hive{}
	_, err = struccy.MergeMapStringFieldsToStruct(filtered, filteredMap, roles)
	if err != nil {
		return nil, errors.NewInternalError("failed to map filtered fields to hive struct", err)
	}
	return filtered, nil
}
