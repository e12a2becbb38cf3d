package tenant

import "context"

type Repository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, t Tenant) (Tenant, error)
	GetByID(ctx context.Context, id string) (Tenant, error)
	List(ctx context.Context) ([]Tenant, error)
}
