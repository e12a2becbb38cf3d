package ministry

import (
	"reflect"
	"testing"

	"go.uber.org/zap"

	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/correction"
	"ministryservice/internal/domain/member"
	"ministryservice/internal/domain/roster"
)

const (
	testMinistry = "dancing-stars"
	homeTenant   = "t-ministry"
)

func mem(id, last string) member.Member {
	return member.Member{
		ID:        id,
		FirstName: "Test",
		LastName:  last,
		Ministry:  testMinistry,
		IsActive:  true,
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func noCorrections() correction.Set {
	return correction.NewSet(nil, nil)
}

func newTestMerger() *Merger {
	return NewMerger(DefaultPolicy(), zap.NewNop())
}

func memberIDs(ms []member.Member) []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.TenantID+"/"+m.ID)
	}
	return out
}

func TestMergeDedupPrefersOriginCopy(t *testing.T) {
	origin := mem("m1", "Mensah")
	origin.Role = "dancer"
	mirror := mem("m1", "Mensah")
	mirror.Role = "stale-role"

	snapshots := map[string]TenantBatch{
		"t-accra":  {Members: []member.Member{origin}},
		homeTenant: {Members: []member.Member{mirror}},
	}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, noCorrections())

	if len(agg.Members) != 1 {
		t.Fatalf("expected 1 member after dedup, got %d: %v", len(agg.Members), memberIDs(agg.Members))
	}
	got := agg.Members[0]
	if got.TenantID != "t-accra" {
		t.Errorf("expected origin copy to win, got tenant %q", got.TenantID)
	}
	if got.Role != "dancer" {
		t.Errorf("expected origin fields, got role %q", got.Role)
	}
}

func TestMergeDedupPreferMinistryPolicy(t *testing.T) {
	origin := mem("m1", "Mensah")
	mirror := mem("m1", "Mensah")
	mirror.Role = "ministry-role"

	snapshots := map[string]TenantBatch{
		"t-accra":  {Members: []member.Member{origin}},
		homeTenant: {Members: []member.Member{mirror}},
	}

	mg := NewMerger(Policy{Precedence: PreferMinistry}, zap.NewNop())
	agg := mg.Merge(testMinistry, homeTenant, snapshots, noCorrections())

	if len(agg.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(agg.Members))
	}
	if agg.Members[0].TenantID != homeTenant {
		t.Errorf("expected ministry copy to win, got tenant %q", agg.Members[0].TenantID)
	}
	if agg.Members[0].Role != "ministry-role" {
		t.Errorf("expected ministry fields, got role %q", agg.Members[0].Role)
	}
}

func TestMergeKeepsDistinctMembersAcrossTenants(t *testing.T) {
	snapshots := map[string]TenantBatch{
		"t-accra":  {Members: []member.Member{mem("m1", "Adjei")}},
		"t-kumasi": {Members: []member.Member{mem("m2", "Baah")}},
	}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, noCorrections())

	if len(agg.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(agg.Members))
	}
}

func TestMergeAppliesExclusions(t *testing.T) {
	snapshots := map[string]TenantBatch{
		"t-accra": {Members: []member.Member{mem("m1", "Adjei"), mem("m2", "Baah")}},
	}
	excl := []correction.Exclusion{{Ministry: testMinistry, TenantID: "t-accra", MemberID: "m2"}}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, correction.NewSet(nil, excl))

	if len(agg.Members) != 1 {
		t.Fatalf("expected 1 member after exclusion, got %d: %v", len(agg.Members), memberIDs(agg.Members))
	}
	if agg.Members[0].ID != "m1" {
		t.Errorf("wrong member survived: %s", agg.Members[0].ID)
	}
	// The excluded member still counts as a contribution for sourceTenants.
	if len(agg.SourceTenants) != 1 || agg.SourceTenants[0] != "t-accra" {
		t.Errorf("unexpected sourceTenants: %v", agg.SourceTenants)
	}
}

func TestMergeAppliesOverridePatch(t *testing.T) {
	m := mem("m1", "Adjei")
	m.Role = "dancer"
	m.Position = "lead"
	snapshots := map[string]TenantBatch{
		"t-accra": {Members: []member.Member{m}},
	}
	ovr := []correction.Override{{
		Ministry: testMinistry,
		TenantID: "t-accra",
		MemberID: "m1",
		Frozen:   boolPtr(true),
		Position: strPtr("backup"),
	}}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, correction.NewSet(ovr, nil))

	if len(agg.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(agg.Members))
	}
	got := agg.Members[0]
	if !got.Frozen {
		t.Error("frozen override not applied")
	}
	if got.Position != "backup" {
		t.Errorf("position override not applied: %q", got.Position)
	}
	if got.Role != "dancer" {
		t.Errorf("nil patch field must not change role, got %q", got.Role)
	}
}

func TestMergeOverrideKeyedToSurvivingCopy(t *testing.T) {
	origin := mem("m1", "Mensah")
	mirror := mem("m1", "Mensah")
	snapshots := map[string]TenantBatch{
		"t-accra":  {Members: []member.Member{origin}},
		homeTenant: {Members: []member.Member{mirror}},
	}
	// Patch keyed to the losing ministry copy must not land anywhere.
	ovr := []correction.Override{{
		Ministry: testMinistry,
		TenantID: homeTenant,
		MemberID: "m1",
		Role:     strPtr("ghost"),
	}}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, correction.NewSet(ovr, nil))

	if len(agg.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(agg.Members))
	}
	if agg.Members[0].Role == "ghost" {
		t.Error("override for dropped copy leaked onto the survivor")
	}
}

func TestMergeSortsByLastNameCaseInsensitive(t *testing.T) {
	snapshots := map[string]TenantBatch{
		"t-accra":  {Members: []member.Member{mem("m1", "mensah"), mem("m2", "Adjei")}},
		"t-kumasi": {Members: []member.Member{mem("m3", "Baah")}},
	}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, noCorrections())

	want := []string{"Adjei", "Baah", "mensah"}
	if len(agg.Members) != len(want) {
		t.Fatalf("expected %d members, got %d", len(want), len(agg.Members))
	}
	for i, w := range want {
		if agg.Members[i].LastName != w {
			t.Errorf("position %d: expected %q, got %q", i, w, agg.Members[i].LastName)
		}
	}
}

func TestMergeSourceTenantsListsContributorsOnly(t *testing.T) {
	snapshots := map[string]TenantBatch{
		"t-accra": {Members: []member.Member{mem("m1", "Adjei")}},
		"t-kumasi": {
			AttendanceRecords: []attendance.Record{{ID: "a1", TenantID: "t-kumasi", MemberID: "m9"}},
		},
	}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, noCorrections())

	if len(agg.SourceTenants) != 1 || agg.SourceTenants[0] != "t-accra" {
		t.Errorf("attendance-only tenant must not appear in sourceTenants: %v", agg.SourceTenants)
	}
	if len(agg.AttendanceRecords) != 1 {
		t.Errorf("attendance concat lost records: %d", len(agg.AttendanceRecords))
	}
}

func TestMergeSkipsMembersWithoutID(t *testing.T) {
	broken := mem("", "Nobody")
	snapshots := map[string]TenantBatch{
		"t-accra":  {Members: []member.Member{broken}},
		"t-kumasi": {Members: []member.Member{mem("m1", "Adjei")}},
	}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, noCorrections())

	if len(agg.Members) != 1 {
		t.Fatalf("expected malformed member to be skipped, got %d members", len(agg.Members))
	}
	if len(agg.SourceTenants) != 1 || agg.SourceTenants[0] != "t-kumasi" {
		t.Errorf("tenant with only malformed members counted as contributor: %v", agg.SourceTenants)
	}
}

func TestMergeEmptyInput(t *testing.T) {
	agg := newTestMerger().Merge(testMinistry, homeTenant, nil, noCorrections())

	if agg.Ministry != testMinistry {
		t.Errorf("ministry not set: %q", agg.Ministry)
	}
	if agg.Members == nil || len(agg.Members) != 0 {
		t.Errorf("expected empty non-nil members, got %#v", agg.Members)
	}
	if agg.SourceTenants == nil || len(agg.SourceTenants) != 0 {
		t.Errorf("expected empty non-nil sourceTenants, got %#v", agg.SourceTenants)
	}
}

func TestMergeConcatenatesSecondaryCollections(t *testing.T) {
	snapshots := map[string]TenantBatch{
		"t-b": {
			Members:  []member.Member{mem("m2", "Baah")},
			Bacentas: []roster.Bacenta{{ID: "b2", TenantID: "t-b", Name: "East"}},
			Guests:   []roster.Guest{{ID: "g1", TenantID: "t-b"}},
		},
		"t-a": {
			Members:       []member.Member{mem("m1", "Adjei")},
			Bacentas:      []roster.Bacenta{{ID: "b1", TenantID: "t-a", Name: "West"}},
			NewBelievers:  []roster.NewBeliever{{ID: "n1", TenantID: "t-a"}},
			Confirmations: []roster.Confirmation{{ID: "c1", TenantID: "t-a", MemberID: "m1"}},
		},
	}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, noCorrections())

	if len(agg.Bacentas) != 2 || agg.Bacentas[0].ID != "b1" || agg.Bacentas[1].ID != "b2" {
		t.Errorf("bacenta concat out of tenant order: %#v", agg.Bacentas)
	}
	if len(agg.NewBelievers) != 1 || len(agg.Confirmations) != 1 || len(agg.Guests) != 1 {
		t.Errorf("secondary collections lost entries: %d %d %d",
			len(agg.NewBelievers), len(agg.Confirmations), len(agg.Guests))
	}
}

func TestMergeSkipsSecondaryEntitiesWithoutID(t *testing.T) {
	snapshots := map[string]TenantBatch{
		"t-accra": {
			Members: []member.Member{mem("m1", "Adjei")},
			AttendanceRecords: []attendance.Record{
				{ID: "", TenantID: "t-accra", MemberID: "m1"},
				{ID: "a1", TenantID: "t-accra", MemberID: "m1"},
			},
			Bacentas: []roster.Bacenta{
				{ID: "", TenantID: "t-accra"},
				{ID: "b1", TenantID: "t-accra", Name: "West"},
			},
			NewBelievers: []roster.NewBeliever{
				{ID: "", TenantID: "t-accra"},
				{ID: "n1", TenantID: "t-accra"},
			},
			Confirmations: []roster.Confirmation{
				{ID: "", TenantID: "t-accra", MemberID: "m1"},
				{ID: "c1", TenantID: "t-accra", MemberID: "m1"},
			},
			Guests: []roster.Guest{
				{ID: "", TenantID: "t-accra"},
				{ID: "g1", TenantID: "t-accra"},
			},
		},
	}

	agg := newTestMerger().Merge(testMinistry, homeTenant, snapshots, noCorrections())

	if len(agg.AttendanceRecords) != 1 || agg.AttendanceRecords[0].ID != "a1" {
		t.Errorf("attendance record without id survived: %#v", agg.AttendanceRecords)
	}
	if len(agg.Bacentas) != 1 || agg.Bacentas[0].ID != "b1" {
		t.Errorf("bacenta without id survived: %#v", agg.Bacentas)
	}
	if len(agg.NewBelievers) != 1 || agg.NewBelievers[0].ID != "n1" {
		t.Errorf("new believer without id survived: %#v", agg.NewBelievers)
	}
	if len(agg.Confirmations) != 1 || agg.Confirmations[0].ID != "c1" {
		t.Errorf("confirmation without id survived: %#v", agg.Confirmations)
	}
	if len(agg.Guests) != 1 || agg.Guests[0].ID != "g1" {
		t.Errorf("guest without id survived: %#v", agg.Guests)
	}
}

func TestMergeIdempotent(t *testing.T) {
	snapshots := map[string]TenantBatch{
		"t-accra":  {Members: []member.Member{mem("m1", "Mensah"), mem("m2", "Adjei")}},
		homeTenant: {Members: []member.Member{mem("m1", "Mensah")}},
	}
	set := correction.NewSet(
		[]correction.Override{{Ministry: testMinistry, TenantID: "t-accra", MemberID: "m2", Role: strPtr("lead")}},
		[]correction.Exclusion{{Ministry: testMinistry, TenantID: "t-accra", MemberID: "m1"}},
	)

	mg := newTestMerger()
	first := mg.Merge(testMinistry, homeTenant, snapshots, set)
	second := mg.Merge(testMinistry, homeTenant, snapshots, set)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("merge is not idempotent:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}
