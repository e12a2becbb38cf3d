package correction

import (
	"context"
	"net/http"

	"ministryservice/internal/domain"
)

type Service interface {
	SaveOverride(ctx context.Context, o Override) (Override, error)
	DeleteOverride(ctx context.Context, ministry, tenantID, memberID string) error
	SaveExclusion(ctx context.Context, e Exclusion) (Exclusion, error)
	DeleteExclusion(ctx context.Context, ministry, tenantID, memberID string) error
}

type service struct {
	uow         domain.UnitOfWork
	corrections Repository
	events      domain.EventBus
	changes     domain.ChangeNotifier
}

func NewService(
	uow domain.UnitOfWork,
	corrections Repository,
	events domain.EventBus,
	changes domain.ChangeNotifier,
) Service {
	return &service{
		uow:         uow,
		corrections: corrections,
		events:      events,
		changes:     changes,
	}
}

func (s *service) SaveOverride(ctx context.Context, o Override) (Override, error) {
	if o.Empty() {
		return Override{}, &domain.DomainError{
			Code:       domain.ErrorCodeEmptyPatch,
			Message:    "override must set at least one field",
			HTTPStatus: http.StatusBadRequest,
		}
	}

	var res Override
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		saved, err := s.corrections.SaveOverride(ctx, o)
		if err != nil {
			return err
		}
		res = saved
		return nil
	})
	if err != nil {
		return Override{}, err
	}

	s.notify(ctx, res.Ministry, domain.CollectionOverrides, "override.saved", map[string]any{
		"ministry":  res.Ministry,
		"tenant_id": res.TenantID,
		"member_id": res.MemberID,
	})
	return res, nil
}

func (s *service) DeleteOverride(ctx context.Context, ministry, tenantID, memberID string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		return s.corrections.DeleteOverride(ctx, ministry, tenantID, memberID)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, ministry, domain.CollectionOverrides, "override.deleted", map[string]any{
		"ministry":  ministry,
		"tenant_id": tenantID,
		"member_id": memberID,
	})
	return nil
}

func (s *service) SaveExclusion(ctx context.Context, e Exclusion) (Exclusion, error) {
	var res Exclusion
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		saved, err := s.corrections.SaveExclusion(ctx, e)
		if err != nil {
			return err
		}
		res = saved
		return nil
	})
	if err != nil {
		return Exclusion{}, err
	}

	s.notify(ctx, res.Ministry, domain.CollectionExclusions, "exclusion.saved", map[string]any{
		"ministry":  res.Ministry,
		"tenant_id": res.TenantID,
		"member_id": res.MemberID,
	})
	return res, nil
}

func (s *service) DeleteExclusion(ctx context.Context, ministry, tenantID, memberID string) error {
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		return s.corrections.DeleteExclusion(ctx, ministry, tenantID, memberID)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, ministry, domain.CollectionExclusions, "exclusion.deleted", map[string]any{
		"ministry":  ministry,
		"tenant_id": tenantID,
		"member_id": memberID,
	})
	return nil
}

func (s *service) notify(ctx context.Context, ministry, collection, eventType string, payload map[string]any) {
	if s.changes != nil {
		s.changes.NotifyChange(ctx, ministry, collection)
	}
	if s.events != nil {
		s.events.Publish(ctx, domain.Event{Type: eventType, Payload: payload})
	}
}
