package live

import (
	"context"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/correction"
	"ministryservice/internal/domain/member"
	"ministryservice/internal/domain/ministry"
)

// Source adapts the storage repositories and the change feed into the
// fetch-and-subscribe surface the aggregation engine consumes. A change
// signal triggers a re-fetch of the complete result set; subscribers always
// receive full snapshots, never deltas.
type Source struct {
	members     member.Repository
	attendance  attendance.Repository
	corrections correction.Repository
	feed        Feed
}

func NewSource(members member.Repository, att attendance.Repository, corr correction.Repository, feed Feed) *Source {
	return &Source{
		members:     members,
		attendance:  att,
		corrections: corr,
		feed:        feed,
	}
}

func (s *Source) HasMinistryMembers(ctx context.Context, tenantID, ministryName string) (bool, error) {
	return s.members.ExistsByMinistry(ctx, tenantID, ministryName)
}

func (s *Source) FetchMembers(ctx context.Context, tenantID, ministryName string) ([]member.Member, error) {
	return s.members.ListByMinistry(ctx, tenantID, ministryName)
}

// SubscribeMembers re-fetches the tenant's ministry members on every change
// signal. Re-fetches run on the feed's dispatch goroutine with a fresh
// context because the subscription outlives the request that opened it.
func (s *Source) SubscribeMembers(ctx context.Context, tenantID, ministryName string, onSnapshot func([]member.Member), onError func(error)) (ministry.Unsubscribe, error) {
	cancel := s.feed.Subscribe(tenantID, domain.CollectionMembers, func() {
		ms, err := s.members.ListByMinistry(context.Background(), tenantID, ministryName)
		if err != nil {
			onError(err)
			return
		}
		onSnapshot(ms)
	})
	return ministry.Unsubscribe(cancel), nil
}

func (s *Source) FetchAttendance(ctx context.Context, tenantID string) ([]attendance.Record, error) {
	return s.attendance.ListByTenant(ctx, tenantID)
}

func (s *Source) SubscribeAttendance(ctx context.Context, tenantID string, onSnapshot func([]attendance.Record), onError func(error)) (ministry.Unsubscribe, error) {
	cancel := s.feed.Subscribe(tenantID, domain.CollectionAttendance, func() {
		rs, err := s.attendance.ListByTenant(context.Background(), tenantID)
		if err != nil {
			onError(err)
			return
		}
		onSnapshot(rs)
	})
	return ministry.Unsubscribe(cancel), nil
}

func (s *Source) FetchOverrides(ctx context.Context, ministryName string) ([]correction.Override, error) {
	return s.corrections.ListOverrides(ctx, ministryName)
}

func (s *Source) FetchExclusions(ctx context.Context, ministryName string) ([]correction.Exclusion, error) {
	return s.corrections.ListExclusions(ctx, ministryName)
}

func (s *Source) SubscribeOverrides(ctx context.Context, ministryName string, onSnapshot func([]correction.Override), onError func(error)) (ministry.Unsubscribe, error) {
	cancel := s.feed.Subscribe(ministryName, domain.CollectionOverrides, func() {
		os, err := s.corrections.ListOverrides(context.Background(), ministryName)
		if err != nil {
			onError(err)
			return
		}
		onSnapshot(os)
	})
	return ministry.Unsubscribe(cancel), nil
}

func (s *Source) SubscribeExclusions(ctx context.Context, ministryName string, onSnapshot func([]correction.Exclusion), onError func(error)) (ministry.Unsubscribe, error) {
	cancel := s.feed.Subscribe(ministryName, domain.CollectionExclusions, func() {
		es, err := s.corrections.ListExclusions(context.Background(), ministryName)
		if err != nil {
			onError(err)
			return
		}
		onSnapshot(es)
	})
	return ministry.Unsubscribe(cancel), nil
}
