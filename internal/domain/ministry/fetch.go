package ministry

import (
	"context"

	"go.uber.org/zap"

	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/member"
)

// fetcher wraps the tenant sources with the containment rules the engine
// relies on: a failed fetch yields an empty result for that tenant and a
// warning, never an error that would sink the whole aggregate. Member
// results additionally pass a client-side active filter and are tagged with
// their origin tenant.
type fetcher struct {
	sources  Sources
	recorder Recorder
	log      *zap.Logger
}

func newFetcher(sources Sources, recorder Recorder, log *zap.Logger) *fetcher {
	return &fetcher{sources: sources, recorder: recorder, log: log}
}

func (f *fetcher) fail(op, tenantID string, err error) {
	f.log.Warn("tenant read failed",
		zap.String("op", op),
		zap.String("tenant_id", tenantID),
		zap.Error(err))
	if f.recorder != nil {
		f.recorder.TenantFailure(op)
	}
}

// prepareMembers applies the engine-side member rules to a raw result set.
// The storage query already narrows by ministry; the active filter runs here
// as well because the flag is not part of the query contract.
func (f *fetcher) prepareMembers(tenantID string, ms []member.Member) []member.Member {
	out := make([]member.Member, 0, len(ms))
	for _, m := range ms {
		if !m.IsActive {
			continue
		}
		m.TenantID = tenantID
		out = append(out, m)
	}
	return out
}

func (f *fetcher) members(ctx context.Context, tenantID, ministry string) []member.Member {
	ms, err := f.sources.Members.FetchMembers(ctx, tenantID, ministry)
	if err != nil {
		f.fail("fetch_members", tenantID, err)
		return nil
	}
	return f.prepareMembers(tenantID, ms)
}

func (f *fetcher) attendanceRecords(ctx context.Context, tenantID string) []attendance.Record {
	rs, err := f.sources.Attendance.FetchAttendance(ctx, tenantID)
	if err != nil {
		f.fail("fetch_attendance", tenantID, err)
		return nil
	}
	return rs
}

// batch reads everything one tenant contributes, containing each collection's
// failure independently.
func (f *fetcher) batch(ctx context.Context, tenantID, ministry string) TenantBatch {
	b := TenantBatch{
		Members:           f.members(ctx, tenantID, ministry),
		AttendanceRecords: f.attendanceRecords(ctx, tenantID),
	}

	var err error
	if b.Bacentas, err = f.sources.Roster.ListBacentas(ctx, tenantID); err != nil {
		f.fail("fetch_bacentas", tenantID, err)
		b.Bacentas = nil
	}
	if b.NewBelievers, err = f.sources.Roster.ListNewBelievers(ctx, tenantID); err != nil {
		f.fail("fetch_new_believers", tenantID, err)
		b.NewBelievers = nil
	}
	if b.Confirmations, err = f.sources.Roster.ListConfirmations(ctx, tenantID); err != nil {
		f.fail("fetch_confirmations", tenantID, err)
		b.Confirmations = nil
	}
	if b.Guests, err = f.sources.Roster.ListGuests(ctx, tenantID); err != nil {
		f.fail("fetch_guests", tenantID, err)
		b.Guests = nil
	}
	return b
}
