package pg

import (
	"context"
	"database/sql"
	"time"

	"ministryservice/internal/domain/stats"
)

type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func textArg(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func dateArg(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func (r *StatsRepository) GetMemberAttendanceStats(ctx context.Context, tenantID, ministry *string, from, to *time.Time) ([]stats.MemberAttendanceStat, error) {
	const q = `
	SELECT a.tenant_id, a.member_id, COUNT(*) AS total,
	COUNT(*) FILTER (WHERE a.status = 'present') AS present,
    COUNT(*) FILTER (WHERE a.status = 'absent') AS absent
	FROM attendance_records a
	JOIN members m ON m.tenant_id = a.tenant_id AND m.member_id = a.member_id
	WHERE ($1::text IS NULL OR a.tenant_id = $1::text)
	AND ($2::text IS NULL OR m.ministry = $2::text)
	AND ($3::date IS NULL OR a.service_date >= $3::date)
	AND ($4::date IS NULL OR a.service_date <= $4::date)
	GROUP BY a.tenant_id, a.member_id
	ORDER BY a.tenant_id, a.member_id;`

	rows, err := query(ctx, r.db, q, textArg(tenantID), textArg(ministry), dateArg(from), dateArg(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []stats.MemberAttendanceStat
	for rows.Next() {
		var s stats.MemberAttendanceStat
		if err := rows.Scan(
			&s.TenantID,
			&s.MemberID,
			&s.Total,
			&s.Present,
			&s.Absent,
		); err != nil {
			return nil, err
		}
		res = append(res, s)
	}

	return res, rows.Err()
}

func (r *StatsRepository) GetDateAttendanceStats(ctx context.Context, tenantID, ministry *string, from, to *time.Time) ([]stats.DateAttendanceStat, error) {
	const q = `
	SELECT a.service_date, COUNT(*) AS total,
	COUNT(*) FILTER (WHERE a.status = 'present') AS present,
	COUNT(*) FILTER (WHERE a.status = 'absent') AS absent
	FROM attendance_records a
	JOIN members m ON m.tenant_id = a.tenant_id AND m.member_id = a.member_id
	WHERE ($1::text IS NULL OR a.tenant_id = $1::text)
	AND ($2::text IS NULL OR m.ministry = $2::text)
	AND ($3::date IS NULL OR a.service_date >= $3::date)
	AND ($4::date IS NULL OR a.service_date <= $4::date)
	GROUP BY a.service_date
	ORDER BY a.service_date;`

	rows, err := query(ctx, r.db, q, textArg(tenantID), textArg(ministry), dateArg(from), dateArg(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []stats.DateAttendanceStat
	for rows.Next() {
		var s stats.DateAttendanceStat
		if err := rows.Scan(
			&s.Date,
			&s.Total,
			&s.Present,
			&s.Absent,
		); err != nil {
			return nil, err
		}
		res = append(res, s)
	}

	return res, rows.Err()
}
