package stats

import (
	"context"
	"time"
)

type Service interface {
	GetMemberStats(ctx context.Context, tenantID, ministry *string, from, to *time.Time) ([]MemberAttendanceStat, error)
	GetDateStats(ctx context.Context, tenantID, ministry *string, from, to *time.Time) ([]DateAttendanceStat, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetMemberStats(ctx context.Context, tenantID, ministry *string, from, to *time.Time) ([]MemberAttendanceStat, error) {
	return s.repo.GetMemberAttendanceStats(ctx, tenantID, ministry, from, to)
}

func (s *service) GetDateStats(ctx context.Context, tenantID, ministry *string, from, to *time.Time) ([]DateAttendanceStat, error) {
	return s.repo.GetDateAttendanceStats(ctx, tenantID, ministry, from, to)
}
