package ministry

import (
	"context"

	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/correction"
	"ministryservice/internal/domain/member"
	"ministryservice/internal/domain/roster"
)

// Unsubscribe releases one live subscription. Implementations must be safe to
// call more than once.
type Unsubscribe func()

// MemberSource reads and watches members inside a single tenant partition.
// Snapshot callbacks always carry the full current result set, never deltas.
type MemberSource interface {
	HasMinistryMembers(ctx context.Context, tenantID, ministry string) (bool, error)
	FetchMembers(ctx context.Context, tenantID, ministry string) ([]member.Member, error)
	SubscribeMembers(ctx context.Context, tenantID, ministry string, onSnapshot func([]member.Member), onError func(error)) (Unsubscribe, error)
}

// AttendanceSource reads and watches one tenant's attendance records.
type AttendanceSource interface {
	FetchAttendance(ctx context.Context, tenantID string) ([]attendance.Record, error)
	SubscribeAttendance(ctx context.Context, tenantID string, onSnapshot func([]attendance.Record), onError func(error)) (Unsubscribe, error)
}

// RosterSource reads the secondary per-tenant collections. They have no live
// subscriptions of their own, so the storage repository satisfies this
// directly.
type RosterSource interface {
	ListBacentas(ctx context.Context, tenantID string) ([]roster.Bacenta, error)
	ListNewBelievers(ctx context.Context, tenantID string) ([]roster.NewBeliever, error)
	ListConfirmations(ctx context.Context, tenantID string) ([]roster.Confirmation, error)
	ListGuests(ctx context.Context, tenantID string) ([]roster.Guest, error)
}

// CorrectionSource reads and watches the ministry-scoped correction
// collections.
type CorrectionSource interface {
	FetchOverrides(ctx context.Context, ministry string) ([]correction.Override, error)
	FetchExclusions(ctx context.Context, ministry string) ([]correction.Exclusion, error)
	SubscribeOverrides(ctx context.Context, ministry string, onSnapshot func([]correction.Override), onError func(error)) (Unsubscribe, error)
	SubscribeExclusions(ctx context.Context, ministry string, onSnapshot func([]correction.Exclusion), onError func(error)) (Unsubscribe, error)
}

// TenantDirectory lists every known tenant partition.
type TenantDirectory interface {
	ListTenantIDs(ctx context.Context) ([]string, error)
}

// Sources bundles every read surface the aggregation engine consumes.
type Sources struct {
	Members     MemberSource
	Attendance  AttendanceSource
	Roster      RosterSource
	Corrections CorrectionSource
	Directory   TenantDirectory
}
