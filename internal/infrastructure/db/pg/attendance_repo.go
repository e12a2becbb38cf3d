package pg

import (
	"context"
	"database/sql"

	"ministryservice/internal/domain/attendance"
)

type AttendanceRepository struct {
	db *sql.DB
}

func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) Insert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	err := queryRow(ctx, r.db,
		`INSERT INTO attendance_records (tenant_id, record_id, member_id, service_date, status)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (tenant_id, record_id) DO UPDATE
		   SET status = EXCLUDED.status,
		       service_date = EXCLUDED.service_date
		 RETURNING tenant_id, record_id, member_id, service_date, status`,
		rec.TenantID, rec.ID, rec.MemberID, rec.Date, rec.Status,
	).Scan(&rec.TenantID, &rec.ID, &rec.MemberID, &rec.Date, &rec.Status)
	return rec, err
}

func (r *AttendanceRepository) ListByTenant(ctx context.Context, tenantID string) ([]attendance.Record, error) {
	rows, err := query(ctx, r.db,
		`SELECT tenant_id, record_id, member_id, service_date, status
		   	FROM attendance_records
		  	WHERE tenant_id = $1
		  	ORDER BY service_date, record_id`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(&rec.TenantID, &rec.ID, &rec.MemberID, &rec.Date, &rec.Status); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}
