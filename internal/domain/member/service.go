package member

import (
	"context"

	"github.com/google/uuid"

	"ministryservice/internal/domain"
)

type Service interface {
	UpsertMember(ctx context.Context, m Member) (Member, error)
	ListMembers(ctx context.Context, tenantID, ministry string) ([]Member, error)
}

type service struct {
	uow     domain.UnitOfWork
	members Repository
	events  domain.EventBus
	changes domain.ChangeNotifier
}

func NewService(
	uow domain.UnitOfWork,
	members Repository,
	events domain.EventBus,
	changes domain.ChangeNotifier,
) Service {
	return &service{
		uow:     uow,
		members: members,
		events:  events,
		changes: changes,
	}
}

func (s *service) UpsertMember(ctx context.Context, m Member) (Member, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	var res Member
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		saved, err := s.members.Upsert(ctx, m)
		if err != nil {
			return err
		}
		res = saved
		return nil
	})
	if err != nil {
		return Member{}, err
	}

	// Notify after commit so subscribers re-fetch committed state.
	if s.changes != nil {
		s.changes.NotifyChange(ctx, res.TenantID, domain.CollectionMembers)
	}
	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type: "member.upserted",
			Payload: map[string]any{
				"tenant_id": res.TenantID,
				"member_id": res.ID,
				"ministry":  res.Ministry,
			},
		})
	}

	return res, nil
}

func (s *service) ListMembers(ctx context.Context, tenantID, ministry string) ([]Member, error) {
	if ministry == "" {
		return s.members.ListByTenant(ctx, tenantID)
	}
	return s.members.ListByMinistry(ctx, tenantID, ministry)
}
