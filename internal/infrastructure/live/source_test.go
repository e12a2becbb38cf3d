package live

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/correction"
	"ministryservice/internal/domain/member"
)

type memberRepoFake struct {
	mu       sync.Mutex
	byTenant map[string][]member.Member
	err      error
}

func (r *memberRepoFake) set(tenantID string, ms ...member.Member) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byTenant == nil {
		r.byTenant = make(map[string][]member.Member)
	}
	r.byTenant[tenantID] = ms
}

func (r *memberRepoFake) Upsert(ctx context.Context, m member.Member) (member.Member, error) {
	return m, nil
}

func (r *memberRepoFake) GetByKey(ctx context.Context, tenantID, memberID string) (member.Member, error) {
	return member.Member{}, errors.New("not implemented")
}

func (r *memberRepoFake) ListByTenant(ctx context.Context, tenantID string) ([]member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byTenant[tenantID], r.err
}

func (r *memberRepoFake) ListByMinistry(ctx context.Context, tenantID, ministryName string) ([]member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []member.Member
	for _, m := range r.byTenant[tenantID] {
		if m.Ministry == ministryName {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memberRepoFake) ExistsByMinistry(ctx context.Context, tenantID, ministryName string) (bool, error) {
	ms, err := r.ListByMinistry(ctx, tenantID, ministryName)
	return len(ms) > 0, err
}

type attendanceRepoFake struct{}

func (attendanceRepoFake) Insert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (attendanceRepoFake) ListByTenant(ctx context.Context, tenantID string) ([]attendance.Record, error) {
	return nil, nil
}

type correctionRepoFake struct {
	mu         sync.Mutex
	exclusions map[string][]correction.Exclusion
}

func (r *correctionRepoFake) SaveOverride(ctx context.Context, o correction.Override) (correction.Override, error) {
	return o, nil
}

func (r *correctionRepoFake) DeleteOverride(ctx context.Context, ministryName, tenantID, memberID string) error {
	return nil
}

func (r *correctionRepoFake) ListOverrides(ctx context.Context, ministryName string) ([]correction.Override, error) {
	return nil, nil
}

func (r *correctionRepoFake) SaveExclusion(ctx context.Context, e correction.Exclusion) (correction.Exclusion, error) {
	return e, nil
}

func (r *correctionRepoFake) DeleteExclusion(ctx context.Context, ministryName, tenantID, memberID string) error {
	return nil
}

func (r *correctionRepoFake) ListExclusions(ctx context.Context, ministryName string) ([]correction.Exclusion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.exclusions[ministryName], nil
}

func TestSourceSubscribeMembersRefetchesOnSignal(t *testing.T) {
	feed := NewMemoryFeed()
	members := &memberRepoFake{}
	members.set("t1", member.Member{ID: "m1", TenantID: "t1", Ministry: "dancing-stars"})

	src := NewSource(members, attendanceRepoFake{}, &correctionRepoFake{}, feed)

	snapshots := make(chan []member.Member, 4)
	errs := make(chan error, 4)
	unsub, err := src.SubscribeMembers(context.Background(), "t1", "dancing-stars",
		func(ms []member.Member) { snapshots <- ms },
		func(err error) { errs <- err })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	members.set("t1",
		member.Member{ID: "m1", TenantID: "t1", Ministry: "dancing-stars"},
		member.Member{ID: "m2", TenantID: "t1", Ministry: "dancing-stars"},
	)
	feed.NotifyChange(context.Background(), "t1", domain.CollectionMembers)

	select {
	case ms := <-snapshots:
		if len(ms) != 2 {
			t.Fatalf("expected fresh snapshot with 2 members, got %d", len(ms))
		}
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot delivered after signal")
	}
}

func TestSourceSubscribeMembersReportsFetchErrors(t *testing.T) {
	feed := NewMemoryFeed()
	members := &memberRepoFake{err: errors.New("connection reset")}

	src := NewSource(members, attendanceRepoFake{}, &correctionRepoFake{}, feed)

	snapshots := make(chan []member.Member, 1)
	errs := make(chan error, 1)
	unsub, err := src.SubscribeMembers(context.Background(), "t1", "dancing-stars",
		func(ms []member.Member) { snapshots <- ms },
		func(err error) { errs <- err })
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	feed.NotifyChange(context.Background(), "t1", domain.CollectionMembers)

	select {
	case <-snapshots:
		t.Fatal("snapshot delivered despite fetch error")
	case <-errs:
	case <-time.After(2 * time.Second):
		t.Fatal("fetch error not reported")
	}
}

func TestSourceSubscribeExclusionsScopedByMinistry(t *testing.T) {
	feed := NewMemoryFeed()
	corr := &correctionRepoFake{exclusions: map[string][]correction.Exclusion{
		"dancing-stars": {{Ministry: "dancing-stars", TenantID: "t1", MemberID: "m1"}},
	}}

	src := NewSource(&memberRepoFake{}, attendanceRepoFake{}, corr, feed)

	snapshots := make(chan []correction.Exclusion, 4)
	unsub, err := src.SubscribeExclusions(context.Background(), "dancing-stars",
		func(es []correction.Exclusion) { snapshots <- es },
		func(err error) {})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer unsub()

	feed.NotifyChange(context.Background(), "greeters", domain.CollectionExclusions)
	select {
	case <-snapshots:
		t.Fatal("signal for another ministry delivered")
	case <-time.After(50 * time.Millisecond):
	}

	feed.NotifyChange(context.Background(), "dancing-stars", domain.CollectionExclusions)
	select {
	case es := <-snapshots:
		if len(es) != 1 || es[0].MemberID != "m1" {
			t.Fatalf("unexpected exclusions: %#v", es)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no exclusion snapshot delivered")
	}
}
