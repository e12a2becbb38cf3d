package correction_test

import (
	"context"
	"errors"
	"testing"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/correction"
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

type correctionRepoFake struct {
	overrides  map[member.Key]correction.Override
	exclusions map[member.Key]correction.Exclusion
}

func newCorrectionRepoFake() *correctionRepoFake {
	return &correctionRepoFake{
		overrides:  map[member.Key]correction.Override{},
		exclusions: map[member.Key]correction.Exclusion{},
	}
}

func (r *correctionRepoFake) SaveOverride(ctx context.Context, o correction.Override) (correction.Override, error) {
	r.overrides[o.Key()] = o
	return o, nil
}
func (r *correctionRepoFake) DeleteOverride(ctx context.Context, ministry, tenantID, memberID string) error {
	delete(r.overrides, member.Key{TenantID: tenantID, MemberID: memberID})
	return nil
}
func (r *correctionRepoFake) ListOverrides(ctx context.Context, ministry string) ([]correction.Override, error) {
	var out []correction.Override
	for _, o := range r.overrides {
		if o.Ministry == ministry {
			out = append(out, o)
		}
	}
	return out, nil
}
func (r *correctionRepoFake) SaveExclusion(ctx context.Context, e correction.Exclusion) (correction.Exclusion, error) {
	r.exclusions[e.Key()] = e
	return e, nil
}
func (r *correctionRepoFake) DeleteExclusion(ctx context.Context, ministry, tenantID, memberID string) error {
	delete(r.exclusions, member.Key{TenantID: tenantID, MemberID: memberID})
	return nil
}
func (r *correctionRepoFake) ListExclusions(ctx context.Context, ministry string) ([]correction.Exclusion, error) {
	var out []correction.Exclusion
	for _, e := range r.exclusions {
		if e.Ministry == ministry {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestSaveOverride_NotifiesMinistryScope(t *testing.T) {
	uow := uowStub{}
	repo := newCorrectionRepoFake()
	changes := &notifierFake{}

	svc := correction.NewService(uow, repo, nil, changes)

	role := "choreographer"
	_, err := svc.SaveOverride(context.Background(), correction.Override{
		Ministry: "dancing-stars",
		TenantID: "east",
		MemberID: "m1",
		Role:     &role,
	})
	if err != nil {
		t.Fatalf("SaveOverride: %v", err)
	}
	if len(changes.scopes) != 1 || changes.scopes[0] != "dancing-stars" || changes.collections[0] != domain.CollectionOverrides {
		t.Fatalf("expected overrides change scoped to the ministry, got scopes=%v collections=%v", changes.scopes, changes.collections)
	}
}

func TestSaveOverride_EmptyPatch(t *testing.T) {
	uow := uowStub{}
	repo := newCorrectionRepoFake()

	svc := correction.NewService(uow, repo, nil, nil)

	_, err := svc.SaveOverride(context.Background(), correction.Override{
		Ministry: "dancing-stars",
		TenantID: "east",
		MemberID: "m1",
	})
	var de *domain.DomainError
	if err == nil || !errors.As(err, &de) || de.Code != domain.ErrorCodeEmptyPatch {
		t.Fatalf("expected EMPTY_PATCH, got %v", err)
	}
	if len(repo.overrides) != 0 {
		t.Fatalf("empty patch should not be stored")
	}
}

func TestExclusionLifecycle(t *testing.T) {
	uow := uowStub{}
	repo := newCorrectionRepoFake()
	changes := &notifierFake{}

	svc := correction.NewService(uow, repo, nil, changes)

	_, err := svc.SaveExclusion(context.Background(), correction.Exclusion{
		Ministry: "dancing-stars",
		TenantID: "east",
		MemberID: "m1",
	})
	if err != nil {
		t.Fatalf("SaveExclusion: %v", err)
	}
	if len(repo.exclusions) != 1 {
		t.Fatalf("exclusion should be stored")
	}

	if err := svc.DeleteExclusion(context.Background(), "dancing-stars", "east", "m1"); err != nil {
		t.Fatalf("DeleteExclusion: %v", err)
	}
	if len(repo.exclusions) != 0 {
		t.Fatalf("exclusion should be gone")
	}
	if len(changes.collections) != 2 || changes.collections[0] != domain.CollectionExclusions || changes.collections[1] != domain.CollectionExclusions {
		t.Fatalf("expected two exclusions notifications, got %v", changes.collections)
	}
}
