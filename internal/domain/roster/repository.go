package roster

import "context"

type Repository interface {
	ListBacentas(ctx context.Context, tenantID string) ([]Bacenta, error)
	ListNewBelievers(ctx context.Context, tenantID string) ([]NewBeliever, error)
	ListConfirmations(ctx context.Context, tenantID string) ([]Confirmation, error)
	ListGuests(ctx context.Context, tenantID string) ([]Guest, error)
}
