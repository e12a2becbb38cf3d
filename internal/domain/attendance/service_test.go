package attendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/member"
)

type uowStub struct{}

func (uowStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type notifierFake struct {
	scopes      []string
	collections []string
}

func (n *notifierFake) NotifyChange(ctx context.Context, scope, collection string) {
	n.scopes = append(n.scopes, scope)
	n.collections = append(n.collections, collection)
}

type attendanceRepoFake struct{ records []attendance.Record }

func (r *attendanceRepoFake) Insert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	r.records = append(r.records, rec)
	return rec, nil
}
func (r *attendanceRepoFake) ListByTenant(ctx context.Context, tenantID string) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range r.records {
		if rec.TenantID == tenantID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memberRepoFake struct{ byKey map[member.Key]member.Member }

func newMemberRepoFake() *memberRepoFake {
	return &memberRepoFake{byKey: map[member.Key]member.Member{}}
}

func (r *memberRepoFake) Upsert(ctx context.Context, m member.Member) (member.Member, error) {
	r.byKey[member.KeyOf(m)] = m
	return m, nil
}
func (r *memberRepoFake) GetByKey(ctx context.Context, tenantID, memberID string) (member.Member, error) {
	m, ok := r.byKey[member.Key{TenantID: tenantID, MemberID: memberID}]
	if !ok {
		return member.Member{}, &domain.DomainError{Code: domain.ErrorCodeNotFound, Message: "member not found", HTTPStatus: 404}
	}
	return m, nil
}
func (r *memberRepoFake) ListByTenant(ctx context.Context, tenantID string) ([]member.Member, error) {
	return nil, nil
}
func (r *memberRepoFake) ListByMinistry(ctx context.Context, tenantID, ministry string) ([]member.Member, error) {
	return nil, nil
}
func (r *memberRepoFake) ExistsByMinistry(ctx context.Context, tenantID, ministry string) (bool, error) {
	return false, nil
}

func TestRecordAttendance(t *testing.T) {
	uow := uowStub{}
	records := &attendanceRepoFake{}
	members := newMemberRepoFake()
	changes := &notifierFake{}

	members.byKey[member.Key{TenantID: "east", MemberID: "m1"}] = member.Member{ID: "m1", TenantID: "east"}

	svc := attendance.NewService(uow, records, members, nil, changes)

	rec, err := svc.RecordAttendance(context.Background(), attendance.Record{
		TenantID: "east",
		MemberID: "m1",
		Date:     time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:   attendance.StatusPresent,
	})
	if err != nil {
		t.Fatalf("RecordAttendance: %v", err)
	}
	if rec.ID == "" {
		t.Fatalf("record should get an id")
	}
	if len(changes.scopes) != 1 || changes.scopes[0] != "east" || changes.collections[0] != domain.CollectionAttendance {
		t.Fatalf("expected attendance change for tenant east, got scopes=%v collections=%v", changes.scopes, changes.collections)
	}
}

func TestRecordAttendance_UnknownMember(t *testing.T) {
	uow := uowStub{}
	records := &attendanceRepoFake{}
	members := newMemberRepoFake()

	svc := attendance.NewService(uow, records, members, nil, nil)

	_, err := svc.RecordAttendance(context.Background(), attendance.Record{
		TenantID: "east",
		MemberID: "ghost",
		Date:     time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:   attendance.StatusPresent,
	})
	var de *domain.DomainError
	if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if len(records.records) != 0 {
		t.Fatalf("no record should be stored, got %+v", records.records)
	}
}

func TestRecordAttendance_InvalidStatus(t *testing.T) {
	uow := uowStub{}
	records := &attendanceRepoFake{}
	members := newMemberRepoFake()

	svc := attendance.NewService(uow, records, members, nil, nil)

	_, err := svc.RecordAttendance(context.Background(), attendance.Record{
		TenantID: "east",
		MemberID: "m1",
		Date:     time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		Status:   attendance.Status("late"),
	})
	var de *domain.DomainError
	if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeInvalidStatus {
		t.Fatalf("expected INVALID_STATUS, got %v", err)
	}
}
