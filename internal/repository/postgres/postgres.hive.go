// FilePath: internal/repository/postgres/postgres.hive.go
package postgres

import (
	"context"
	"database/sql"

	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/database"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/errors"
	"github.com/FrancoCasanova1/Reserva-Trefila-Colmena-Inteligente/internal/models"
	"github.com/lib/pq"
)

type HiveRepo struct {
	PostgresBaseRepo
}

func NewHiveRepository(db database.DB) *HiveRepo {
	repo := &PostgresBaseRepo{db: db}
	return &HiveRepo{PostgresBaseRepo: *repo}
}

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}

func (r *HiveRepo) Create(ctx context.Context, hive *models.Hive) error {
	query := `
		INSERT INTO hives (
			hive_unique_id, name, location, user_id, notes,
			created_at, updated_at
		) VALUES (
			:hive_unique_id, :name, :location, :user_id, :notes,
			:created_at, :updated_at
		)`

	_, err := r.db.GetDB().NamedExecContext(ctx, query, hive)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewConflictError("hive already exists", err)
		}
		return errors.NewDatabaseError("failed to create hive", err)
	}
	return nil
}

func (r *HiveRepo) Get(ctx context.Context, hiveUniqueID string) (*models.Hive, error) {
	hive := &models.Hive{}
	query := `SELECT * FROM hives WHERE hive_unique_id = $1`

	err := r.db.GetDB().GetContext(ctx, hive, query, hiveUniqueID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("hive not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get hive", err)
	}
	return hive, nil
}

// Update mutates the editable fields only; the identifier and the owner
// reference are immutable once set.
func (r *HiveRepo) Update(ctx context.Context, hive *models.Hive) error {
	query := `
		UPDATE hives SET
			name = :name,
			location = :location,
			notes = :notes,
			updated_at = :updated_at
		WHERE hive_unique_id = :hive_unique_id`

	result, err := r.db.GetDB().NamedExecContext(ctx, query, hive)
	if err != nil {
		return errors.NewDatabaseError("failed to update hive", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("hive not found", nil)
	}

	return nil
}

// ListPublic returns every hive ordered by name ascending. Owner-scoped
// fields are stripped later by the service layer's public projection.
func (r *HiveRepo) ListPublic(ctx context.Context) ([]*models.Hive, error) {
	hives := []*models.Hive{}
	query := `SELECT * FROM hives ORDER BY name ASC, hive_unique_id ASC`

	err := r.db.GetDB().SelectContext(ctx, &hives, query)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list hives", err)
	}

	return hives, nil
}

// ListByOwner returns the user's hives, newest first.
func (r *HiveRepo) ListByOwner(ctx context.Context, userID string) ([]*models.Hive, error) {
	hives := []*models.Hive{}
	query := `SELECT * FROM hives WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.GetDB().SelectContext(ctx, &hives, query, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("failed to list hives by owner", err)
	}

	return hives, nil
}

func (r *HiveRepo) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM hives`

	err := r.db.GetDB().GetContext(ctx, &count, query)
	if err != nil {
		return 0, errors.NewDatabaseError("failed to count hives", err)
	}
	return count, nil
}

func (r *HiveRepo) Delete(ctx context.Context, hiveUniqueID string) error {
	query := `DELETE FROM hives WHERE hive_unique_id = $1`

	result, err := r.db.GetDB().ExecContext(ctx, query, hiveUniqueID)
	if err != nil {
		return errors.NewDatabaseError("failed to delete hive", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}

	if rows == 0 {
		return errors.NewNotFoundError("hive not found", nil)
	}

	return nil
}
