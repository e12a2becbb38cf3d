package member

import "context"

type Repository interface {
	Upsert(ctx context.Context, m Member) (Member, error)
	GetByKey(ctx context.Context, tenantID, memberID string) (Member, error)
	ListByTenant(ctx context.Context, tenantID string) ([]Member, error)
	ListByMinistry(ctx context.Context, tenantID, ministry string) ([]Member, error)
	ExistsByMinistry(ctx context.Context, tenantID, ministry string) (bool, error)
}
