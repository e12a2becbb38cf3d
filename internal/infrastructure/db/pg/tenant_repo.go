package pg

import (
	"context"
	"database/sql"
	"errors"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/tenant"
)

type TenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := queryRow(ctx, r.db,
		`SELECT EXISTS(SELECT 1 FROM tenants WHERE name = $1)`,
		name,
	).Scan(&exists)
	return exists, err
}

func (r *TenantRepository) Create(ctx context.Context, t tenant.Tenant) (tenant.Tenant, error) {
	err := queryRow(ctx, r.db,
		`INSERT INTO tenants (tenant_id, name)
		 VALUES ($1, $2)
		 RETURNING tenant_id, name, created_at`,
		t.ID, t.Name,
	).Scan(&t.ID, &t.Name, &t.CreatedAt)
	return t, err
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (tenant.Tenant, error) {
	var t tenant.Tenant
	err := queryRow(ctx, r.db,
		`SELECT tenant_id, name, created_at
		   	FROM tenants
		  	WHERE tenant_id = $1`,
		id,
	).Scan(&t.ID, &t.Name, &t.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return tenant.Tenant{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "tenant not found",
			HTTPStatus: 404,
		}
	}
	if err != nil {
		return tenant.Tenant{}, err
	}

	return t, nil
}

func (r *TenantRepository) List(ctx context.Context) ([]tenant.Tenant, error) {
	rows, err := query(ctx, r.db,
		`SELECT tenant_id, name, created_at
		   	FROM tenants
		  	ORDER BY created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []tenant.Tenant
	for rows.Next() {
		var t tenant.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

// ListTenantIDs serves tenant discovery for the aggregation engine.
func (r *TenantRepository) ListTenantIDs(ctx context.Context) ([]string, error) {
	rows, err := query(ctx, r.db,
		`SELECT tenant_id FROM tenants ORDER BY tenant_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, rows.Err()
}
