package pg

import (
	"context"
	"database/sql"

	"ministryservice/internal/domain/roster"
)

type RosterRepository struct {
	db *sql.DB
}

func NewRosterRepository(db *sql.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListBacentas(ctx context.Context, tenantID string) ([]roster.Bacenta, error) {
	rows, err := query(ctx, r.db,
		`SELECT tenant_id, bacenta_id, name, leader_id
		   	FROM bacentas
		  	WHERE tenant_id = $1
		  	ORDER BY name`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []roster.Bacenta
	for rows.Next() {
		var b roster.Bacenta
		if err := rows.Scan(&b.TenantID, &b.ID, &b.Name, &b.LeaderID); err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

func (r *RosterRepository) ListNewBelievers(ctx context.Context, tenantID string) ([]roster.NewBeliever, error) {
	rows, err := query(ctx, r.db,
		`SELECT tenant_id, believer_id, first_name, last_name, date_joined
		   	FROM new_believers
		  	WHERE tenant_id = $1
		  	ORDER BY date_joined, believer_id`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []roster.NewBeliever
	for rows.Next() {
		var n roster.NewBeliever
		if err := rows.Scan(&n.TenantID, &n.ID, &n.FirstName, &n.LastName, &n.DateJoined); err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, rows.Err()
}

func (r *RosterRepository) ListConfirmations(ctx context.Context, tenantID string) ([]roster.Confirmation, error) {
	rows, err := query(ctx, r.db,
		`SELECT tenant_id, confirmation_id, member_id, confirmed_on
		   	FROM confirmations
		  	WHERE tenant_id = $1
		  	ORDER BY confirmed_on, confirmation_id`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []roster.Confirmation
	for rows.Next() {
		var c roster.Confirmation
		if err := rows.Scan(&c.TenantID, &c.ID, &c.MemberID, &c.Date); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (r *RosterRepository) ListGuests(ctx context.Context, tenantID string) ([]roster.Guest, error) {
	rows, err := query(ctx, r.db,
		`SELECT tenant_id, guest_id, first_name, last_name, invited_by
		   	FROM guests
		  	WHERE tenant_id = $1
		  	ORDER BY last_name, guest_id`,
		tenantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []roster.Guest
	for rows.Next() {
		var g roster.Guest
		if err := rows.Scan(&g.TenantID, &g.ID, &g.FirstName, &g.LastName, &g.InvitedBy); err != nil {
			return nil, err
		}
		res = append(res, g)
	}
	return res, rows.Err()
}
