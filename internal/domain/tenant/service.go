package tenant

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"ministryservice/internal/domain"
)

type Service interface {
	AddTenant(ctx context.Context, name string) (Tenant, error)
	GetTenant(ctx context.Context, id string) (Tenant, error)
	ListTenants(ctx context.Context) ([]Tenant, error)
}

type service struct {
	uow     domain.UnitOfWork
	tenants Repository
	events  domain.EventBus
}

func NewService(uow domain.UnitOfWork, tenants Repository, events domain.EventBus) Service {
	return &service{
		uow:     uow,
		tenants: tenants,
		events:  events,
	}
}

func (s *service) AddTenant(ctx context.Context, name string) (Tenant, error) {
	var result Tenant

	name = strings.TrimSpace(name)

	err := s.uow.WithinTx(ctx, func(ctx context.Context) error {
		exists, err := s.tenants.Exists(ctx, name)
		if err != nil {
			return err
		}
		if exists {
			return &domain.DomainError{
				Code:       domain.ErrorCodeTenantExists,
				Message:    "tenant name already exists",
				HTTPStatus: http.StatusBadRequest,
			}
		}

		created, err := s.tenants.Create(ctx, Tenant{
			ID:   uuid.NewString(),
			Name: name,
		})
		if err != nil {
			return err
		}
		result = created

		if s.events != nil {
			s.events.Publish(ctx, domain.Event{
				Type: "tenant.created",
				Payload: map[string]any{
					"tenant_id": created.ID,
					"name":      created.Name,
				},
			})
		}
		return nil
	})

	return result, err
}

func (s *service) GetTenant(ctx context.Context, id string) (Tenant, error) {
	return s.tenants.GetByID(ctx, id)
}

func (s *service) ListTenants(ctx context.Context) ([]Tenant, error) {
	return s.tenants.List(ctx)
}
