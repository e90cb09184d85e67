package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/adinkra-labs/claims-api/internal/models"
)

// CenterRepository provides read access to study centers.
type CenterRepository struct {
	db *sqlx.DB
}

// NewCenterRepository constructs the repository.
func NewCenterRepository(db *sqlx.DB) *CenterRepository {
	return &CenterRepository{db: db}
}

// GetByID fetches a center by identifier.
func (r *CenterRepository) GetByID(ctx context.Context, id string) (*models.Center, error) {
	const query = `SELECT id, name, location, coordinator_id, created_at, updated_at FROM centers WHERE id = $1 LIMIT 1`
	var center models.Center
	if err := r.db.GetContext(ctx, &center, query, id); err != nil {
		return nil, err
	}
	return &center, nil
}

// List returns all centers ordered by name.
func (r *CenterRepository) List(ctx context.Context) ([]models.Center, error) {
	const query = `SELECT id, name, location, coordinator_id, created_at, updated_at FROM centers ORDER BY name`
	var centers []models.Center
	if err := r.db.SelectContext(ctx, &centers, query); err != nil {
		return nil, fmt.Errorf("list centers: %w", err)
	}
	return centers, nil
}
