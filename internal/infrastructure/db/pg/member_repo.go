package pg

import (
	"context"
	"database/sql"
	"errors"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/member"
)

type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

const memberColumns = `tenant_id, member_id, first_name, last_name, ministry,
	bacenta_id, role, position, frozen, is_active, native_ministry_member`

func scanMember(row interface{ Scan(...any) error }) (member.Member, error) {
	var m member.Member
	err := row.Scan(&m.TenantID, &m.ID, &m.FirstName, &m.LastName, &m.Ministry,
		&m.BacentaID, &m.Role, &m.Position, &m.Frozen, &m.IsActive, &m.NativeMinistryMember)
	return m, err
}

func (r *MemberRepository) Upsert(ctx context.Context, m member.Member) (member.Member, error) {
	err := queryRow(ctx, r.db,
		`INSERT INTO members (`+memberColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (tenant_id, member_id) DO UPDATE
		   SET first_name = EXCLUDED.first_name,
		       last_name = EXCLUDED.last_name,
		       ministry = EXCLUDED.ministry,
		       bacenta_id = EXCLUDED.bacenta_id,
		       role = EXCLUDED.role,
		       position = EXCLUDED.position,
		       frozen = EXCLUDED.frozen,
		       is_active = EXCLUDED.is_active,
		       native_ministry_member = EXCLUDED.native_ministry_member
		 RETURNING `+memberColumns,
		m.TenantID, m.ID, m.FirstName, m.LastName, m.Ministry,
		m.BacentaID, m.Role, m.Position, m.Frozen, m.IsActive, m.NativeMinistryMember,
	).Scan(&m.TenantID, &m.ID, &m.FirstName, &m.LastName, &m.Ministry,
		&m.BacentaID, &m.Role, &m.Position, &m.Frozen, &m.IsActive, &m.NativeMinistryMember)
	return m, err
}

func (r *MemberRepository) GetByKey(ctx context.Context, tenantID, memberID string) (member.Member, error) {
	m, err := scanMember(queryRow(ctx, r.db,
		`SELECT `+memberColumns+`
		   	FROM members
		  	WHERE tenant_id = $1 AND member_id = $2`,
		tenantID, memberID,
	))

	if errors.Is(err, sql.ErrNoRows) {
		return member.Member{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "member not found",
			HTTPStatus: 404,
		}
	}
	if err != nil {
		return member.Member{}, err
	}

	return m, nil
}

func (r *MemberRepository) ListByTenant(ctx context.Context, tenantID string) ([]member.Member, error) {
	rows, err := query(ctx, r.db,
		`SELECT `+memberColumns+`
		   	FROM members
		  	WHERE tenant_id = $1
		  	ORDER BY last_name, member_id`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	return collectMembers(rows)
}

// ListByMinistry narrows by the ministry tag only; the active flag is
// deliberately not part of the query and is filtered by the caller.
func (r *MemberRepository) ListByMinistry(ctx context.Context, tenantID, ministry string) ([]member.Member, error) {
	rows, err := query(ctx, r.db,
		`SELECT `+memberColumns+`
		   	FROM members
		  	WHERE tenant_id = $1 AND ministry = $2
		  	ORDER BY last_name, member_id`,
		tenantID, ministry,
	)
	if err != nil {
		return nil, err
	}
	return collectMembers(rows)
}

func (r *MemberRepository) ExistsByMinistry(ctx context.Context, tenantID, ministry string) (bool, error) {
	var exists bool
	err := queryRow(ctx, r.db,
		`SELECT EXISTS(
		   SELECT 1 FROM members WHERE tenant_id = $1 AND ministry = $2
		 )`,
		tenantID, ministry,
	).Scan(&exists)
	return exists, err
}

func collectMembers(rows *sql.Rows) ([]member.Member, error) {
	defer rows.Close()

	var res []member.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}
