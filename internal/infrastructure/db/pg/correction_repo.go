package pg

import (
	"context"
	"database/sql"
	"errors"

	"ministryservice/internal/domain/correction"
)

type CorrectionRepository struct {
	db *sql.DB
}

func NewCorrectionRepository(db *sql.DB) *CorrectionRepository {
	return &CorrectionRepository{db: db}
}

func (r *CorrectionRepository) SaveOverride(ctx context.Context, o correction.Override) (correction.Override, error) {
	var (
		frozen   sql.NullBool
		role     sql.NullString
		position sql.NullString
	)
	err := queryRow(ctx, r.db,
		`INSERT INTO ministry_overrides (ministry, tenant_id, member_id, frozen, role, position, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (ministry, tenant_id, member_id) DO UPDATE
		   SET frozen = EXCLUDED.frozen,
		       role = EXCLUDED.role,
		       position = EXCLUDED.position,
		       updated_at = now()
		 RETURNING ministry, tenant_id, member_id, frozen, role, position, updated_at`,
		o.Ministry, o.TenantID, o.MemberID, o.Frozen, o.Role, o.Position,
	).Scan(&o.Ministry, &o.TenantID, &o.MemberID, &frozen, &role, &position, &o.UpdatedAt)
	if err != nil {
		return correction.Override{}, err
	}

	o.Frozen, o.Role, o.Position = patchFields(frozen, role, position)
	return o, nil
}

func (r *CorrectionRepository) DeleteOverride(ctx context.Context, ministry, tenantID, memberID string) error {
	_, err := exec(ctx, r.db,
		`DELETE FROM ministry_overrides
		  WHERE ministry = $1 AND tenant_id = $2 AND member_id = $3`,
		ministry, tenantID, memberID,
	)
	return err
}

func (r *CorrectionRepository) ListOverrides(ctx context.Context, ministry string) ([]correction.Override, error) {
	rows, err := query(ctx, r.db,
		`SELECT ministry, tenant_id, member_id, frozen, role, position, updated_at
		   	FROM ministry_overrides
		  	WHERE ministry = $1`,
		ministry,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []correction.Override
	for rows.Next() {
		var (
			o        correction.Override
			frozen   sql.NullBool
			role     sql.NullString
			position sql.NullString
		)
		if err := rows.Scan(&o.Ministry, &o.TenantID, &o.MemberID, &frozen, &role, &position, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Frozen, o.Role, o.Position = patchFields(frozen, role, position)
		res = append(res, o)
	}
	return res, rows.Err()
}

func (r *CorrectionRepository) SaveExclusion(ctx context.Context, e correction.Exclusion) (correction.Exclusion, error) {
	err := queryRow(ctx, r.db,
		`INSERT INTO ministry_exclusions (ministry, tenant_id, member_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (ministry, tenant_id, member_id) DO NOTHING
		 RETURNING ministry, tenant_id, member_id, created_at`,
		e.Ministry, e.TenantID, e.MemberID,
	).Scan(&e.Ministry, &e.TenantID, &e.MemberID, &e.CreatedAt)

	// ON CONFLICT DO NOTHING returns no row when the exclusion already
	// exists; saving twice is not an error.
	if errors.Is(err, sql.ErrNoRows) {
		return r.getExclusion(ctx, e.Ministry, e.TenantID, e.MemberID)
	}
	if err != nil {
		return correction.Exclusion{}, err
	}
	return e, nil
}

func (r *CorrectionRepository) getExclusion(ctx context.Context, ministry, tenantID, memberID string) (correction.Exclusion, error) {
	var e correction.Exclusion
	err := queryRow(ctx, r.db,
		`SELECT ministry, tenant_id, member_id, created_at
		   	FROM ministry_exclusions
		  	WHERE ministry = $1 AND tenant_id = $2 AND member_id = $3`,
		ministry, tenantID, memberID,
	).Scan(&e.Ministry, &e.TenantID, &e.MemberID, &e.CreatedAt)
	return e, err
}

func (r *CorrectionRepository) DeleteExclusion(ctx context.Context, ministry, tenantID, memberID string) error {
	_, err := exec(ctx, r.db,
		`DELETE FROM ministry_exclusions
		  WHERE ministry = $1 AND tenant_id = $2 AND member_id = $3`,
		ministry, tenantID, memberID,
	)
	return err
}

func (r *CorrectionRepository) ListExclusions(ctx context.Context, ministry string) ([]correction.Exclusion, error) {
	rows, err := query(ctx, r.db,
		`SELECT ministry, tenant_id, member_id, created_at
		   	FROM ministry_exclusions
		  	WHERE ministry = $1`,
		ministry,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []correction.Exclusion
	for rows.Next() {
		var e correction.Exclusion
		if err := rows.Scan(&e.Ministry, &e.TenantID, &e.MemberID, &e.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

func patchFields(frozen sql.NullBool, role, position sql.NullString) (*bool, *string, *string) {
	var (
		f *bool
		r *string
		p *string
	)
	if frozen.Valid {
		f = &frozen.Bool
	}
	if role.Valid {
		r = &role.String
	}
	if position.Valid {
		p = &position.String
	}
	return f, r, p
}
