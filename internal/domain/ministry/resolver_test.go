package ministry

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"ministryservice/internal/domain/member"
)

func TestResolveIncludesProbeHitsAndCallerTenants(t *testing.T) {
	dir := &fakeDirectory{ids: []string{"t1", "t2", "t3"}}
	ms := newFakeMemberSource()
	ms.set("t1", member.Member{ID: "m1", Ministry: testMinistry, IsActive: true})
	ms.set("t3", member.Member{ID: "m2", Ministry: "other-ministry", IsActive: true})

	r := NewResolver(dir, ms, nil, zap.NewNop())
	got := r.Resolve(context.Background(), testMinistry, "t-current", "t-home")

	want := []string{"t1", "t-current", "t-home"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestResolveSkipsProbeFailures(t *testing.T) {
	dir := &fakeDirectory{ids: []string{"t1", "t2"}}
	ms := newFakeMemberSource()
	ms.set("t1", member.Member{ID: "m1", Ministry: testMinistry, IsActive: true})
	ms.set("t2", member.Member{ID: "m2", Ministry: testMinistry, IsActive: true})
	ms.probeErr["t2"] = errors.New("partition unavailable")

	r := NewResolver(dir, ms, nil, zap.NewNop())
	got := r.Resolve(context.Background(), testMinistry, "", "")

	want := []string{"t1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("failing tenant must be skipped, got %v", got)
	}
}

func TestResolveDedupesCallerTenants(t *testing.T) {
	dir := &fakeDirectory{ids: []string{"t1"}}
	ms := newFakeMemberSource()
	ms.set("t1", member.Member{ID: "m1", Ministry: testMinistry, IsActive: true})

	r := NewResolver(dir, ms, nil, zap.NewNop())
	got := r.Resolve(context.Background(), testMinistry, "t1", "t1")

	want := []string{"t1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("caller tenant duplicated: %v", got)
	}
}

func TestResolveDirectoryErrorFallsBackToCallerTenants(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("directory down")}
	ms := newFakeMemberSource()

	r := NewResolver(dir, ms, nil, zap.NewNop())
	got := r.Resolve(context.Background(), testMinistry, "t-current", "t-home")

	want := []string{"t-current", "t-home"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected caller tenants only, got %v", got)
	}
}

func TestResolveZeroCandidatesIsValid(t *testing.T) {
	dir := &fakeDirectory{}
	ms := newFakeMemberSource()

	r := NewResolver(dir, ms, nil, zap.NewNop())
	got := r.Resolve(context.Background(), testMinistry, "", "")

	if len(got) != 0 {
		t.Fatalf("expected zero candidates, got %v", got)
	}
}
