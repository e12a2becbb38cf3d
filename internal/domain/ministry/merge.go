package ministry

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"ministryservice/internal/domain/correction"
	"ministryservice/internal/domain/member"
)

// Merger turns per-tenant batches into one corrected aggregate. Merge is
// pure: it performs no I/O, never mutates its inputs, and identical inputs
// produce deep-equal aggregates, so it can be re-run at any time.
type Merger struct {
	policy Policy
	log    *zap.Logger
}

func NewMerger(policy Policy, log *zap.Logger) *Merger {
	return &Merger{policy: policy, log: log}
}

// skipWithoutID reports whether an entity lacks its id and should be dropped
// from the aggregate.
func (mg *Merger) skipWithoutID(kind, tenantID, ministry, id string) bool {
	if id != "" {
		return false
	}
	mg.log.Warn("skipping "+kind+" without id",
		zap.String("tenant_id", tenantID),
		zap.String("ministry", ministry))
	return true
}

// Merge builds the aggregate for one ministry homed in homeTenant.
//
// Members are concatenated in sorted tenant order, de-duplicated by bare
// member id according to the precedence policy, filtered through exclusions,
// patched with overrides and stably sorted by lower-cased last name. The
// remaining collections are concatenated, subject to the same id check.
// SourceTenants holds the tenants that contributed at least one member
// before de-duplication.
func (mg *Merger) Merge(ministry, homeTenant string, snapshots map[string]TenantBatch, corrections correction.Set) Aggregate {
	agg := emptyAggregate(ministry)

	tenantIDs := make([]string, 0, len(snapshots))
	for id := range snapshots {
		tenantIDs = append(tenantIDs, id)
	}
	sort.Strings(tenantIDs)

	var candidates []member.Member
	for _, tid := range tenantIDs {
		contributed := false
		for _, m := range snapshots[tid].Members {
			if mg.skipWithoutID("member", tid, ministry, m.ID) {
				continue
			}
			// The batch's partition is authoritative for origin.
			m.TenantID = tid
			candidates = append(candidates, m)
			contributed = true
		}
		if contributed {
			agg.SourceTenants = append(agg.SourceTenants, tid)
		}
	}

	// Index the preferred side's bare ids up front so the winner does not
	// depend on concatenation order.
	preferred := make(map[string]struct{})
	for _, c := range candidates {
		if mg.policy.prefers(c.TenantID, homeTenant) {
			preferred[c.ID] = struct{}{}
		}
	}

	seen := make(map[member.Key]struct{}, len(candidates))
	for _, c := range candidates {
		if !mg.policy.prefers(c.TenantID, homeTenant) {
			if _, ok := preferred[c.ID]; ok {
				continue
			}
		}
		k := member.KeyOf(c)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}

		if corrections.Excluded(k) {
			continue
		}
		if o, ok := corrections.OverrideFor(k); ok {
			c = o.Apply(c)
		}
		agg.Members = append(agg.Members, c)
	}

	sort.SliceStable(agg.Members, func(i, j int) bool {
		return strings.ToLower(agg.Members[i].LastName) < strings.ToLower(agg.Members[j].LastName)
	})

	for _, tid := range tenantIDs {
		batch := snapshots[tid]
		for _, r := range batch.AttendanceRecords {
			if mg.skipWithoutID("attendance record", tid, ministry, r.ID) {
				continue
			}
			agg.AttendanceRecords = append(agg.AttendanceRecords, r)
		}
		for _, b := range batch.Bacentas {
			if mg.skipWithoutID("bacenta", tid, ministry, b.ID) {
				continue
			}
			agg.Bacentas = append(agg.Bacentas, b)
		}
		for _, nb := range batch.NewBelievers {
			if mg.skipWithoutID("new believer", tid, ministry, nb.ID) {
				continue
			}
			agg.NewBelievers = append(agg.NewBelievers, nb)
		}
		for _, cf := range batch.Confirmations {
			if mg.skipWithoutID("confirmation", tid, ministry, cf.ID) {
				continue
			}
			agg.Confirmations = append(agg.Confirmations, cf)
		}
		for _, g := range batch.Guests {
			if mg.skipWithoutID("guest", tid, ministry, g.ID) {
				continue
			}
			agg.Guests = append(agg.Guests, g)
		}
	}

	return agg
}
