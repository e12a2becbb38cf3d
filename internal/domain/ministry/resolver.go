package ministry

import (
	"context"

	"go.uber.org/zap"
)

// Resolver discovers which tenant partitions currently host members of a
// ministry.
type Resolver struct {
	directory TenantDirectory
	members   MemberSource
	recorder  Recorder
	log       *zap.Logger
}

func NewResolver(directory TenantDirectory, members MemberSource, recorder Recorder, log *zap.Logger) *Resolver {
	return &Resolver{directory: directory, members: members, recorder: recorder, log: log}
}

// Resolve probes every known tenant for ministry members and returns the ids
// of those that have any. The caller's current and home tenants are always
// included even when the probe misses them, so a stale directory can never
// hide the caller's own partitions. A tenant whose probe fails is skipped;
// an empty directory is a valid outcome, not an error.
func (r *Resolver) Resolve(ctx context.Context, ministry, currentTenant, homeTenant string) []string {
	ids, err := r.directory.ListTenantIDs(ctx)
	if err != nil {
		r.log.Warn("tenant directory listing failed", zap.Error(err))
		if r.recorder != nil {
			r.recorder.TenantFailure("list_tenants")
		}
		ids = nil
	}

	seen := make(map[string]struct{}, len(ids)+2)
	out := make([]string, 0, len(ids)+2)
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	for _, id := range ids {
		ok, err := r.members.HasMinistryMembers(ctx, id, ministry)
		if err != nil {
			r.log.Warn("ministry probe failed",
				zap.String("tenant_id", id),
				zap.String("ministry", ministry),
				zap.Error(err))
			if r.recorder != nil {
				r.recorder.TenantFailure("probe")
			}
			continue
		}
		if ok {
			add(id)
		}
	}

	add(currentTenant)
	add(homeTenant)

	if r.recorder != nil {
		r.recorder.TenantsResolved(len(out))
	}
	return out
}
