package correction

import "context"

type Repository interface {
	SaveOverride(ctx context.Context, o Override) (Override, error)
	DeleteOverride(ctx context.Context, ministry, tenantID, memberID string) error
	ListOverrides(ctx context.Context, ministry string) ([]Override, error)

	SaveExclusion(ctx context.Context, e Exclusion) (Exclusion, error)
	DeleteExclusion(ctx context.Context, ministry, tenantID, memberID string) error
	ListExclusions(ctx context.Context, ministry string) ([]Exclusion, error)
}
