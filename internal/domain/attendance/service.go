package attendance

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/member"
)

type Service interface {
	RecordAttendance(ctx context.Context, r Record) (Record, error)
	ListAttendance(ctx context.Context, tenantID string) ([]Record, error)
}

type service struct {
	uow     domain.UnitOfWork
	records Repository
	members member.Repository
	events  domain.EventBus
	changes domain.ChangeNotifier
}

func NewService(
	uow domain.UnitOfWork,
	records Repository,
	members member.Repository,
	events domain.EventBus,
	changes domain.ChangeNotifier,
) Service {
	return &service{
		uow:     uow,
		records: records,
		members: members,
		events:  events,
		changes: changes,
	}
}

func (s *service) RecordAttendance(ctx context.Context, r Record) (Record, error) {
	if !r.Status.Valid() {
		return Record{}, &domain.DomainError{
			Code:       domain.ErrorCodeInvalidStatus,
			Message:    "status must be present or absent",
			HTTPStatus: http.StatusBadRequest,
		}
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	var res Record
	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.members.GetByKey(ctx, r.TenantID, r.MemberID); err != nil {
			return err
		}

		saved, err := s.records.Insert(ctx, r)
		if err != nil {
			return err
		}
		res = saved
		return nil
	})
	if err != nil {
		return Record{}, err
	}

	if s.changes != nil {
		s.changes.NotifyChange(ctx, res.TenantID, domain.CollectionAttendance)
	}
	if s.events != nil {
		s.events.Publish(ctx, domain.Event{
			Type: "attendance.recorded",
			Payload: map[string]any{
				"tenant_id": res.TenantID,
				"record_id": res.ID,
				"member_id": res.MemberID,
				"status":    string(res.Status),
			},
		})
	}

	return res, nil
}

func (s *service) ListAttendance(ctx context.Context, tenantID string) ([]Record, error) {
	return s.records.ListByTenant(ctx, tenantID)
}
