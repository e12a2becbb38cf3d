package attendance

import "context"

type Repository interface {
	Insert(ctx context.Context, r Record) (Record, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Record, error)
}
