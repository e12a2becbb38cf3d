package stats

import (
	"context"
	"time"
)

type Repository interface {
	GetMemberAttendanceStats(ctx context.Context, tenantID, ministry *string, from, to *time.Time) ([]MemberAttendanceStat, error)
	GetDateAttendanceStats(ctx context.Context, tenantID, ministry *string, from, to *time.Time) ([]DateAttendanceStat, error)
}
