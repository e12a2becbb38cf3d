package ministry

import (
	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/member"
	"ministryservice/internal/domain/roster"
)

// TenantBatch is everything one tenant partition currently contributes to a
// ministry view. Batches are replaced wholesale on every snapshot event.
type TenantBatch struct {
	Members           []member.Member
	AttendanceRecords []attendance.Record
	Bacentas          []roster.Bacenta
	NewBelievers      []roster.NewBeliever
	Confirmations     []roster.Confirmation
	Guests            []roster.Guest
}

// Aggregate is the merged, corrected, de-duplicated cross-tenant view for one
// ministry. Members are sorted by last name; SourceTenants lists the tenants
// contributing members to this snapshot, never a historical union.
type Aggregate struct {
	Ministry          string
	Members           []member.Member
	Bacentas          []roster.Bacenta
	AttendanceRecords []attendance.Record
	NewBelievers      []roster.NewBeliever
	Confirmations     []roster.Confirmation
	Guests            []roster.Guest
	SourceTenants     []string
}

func emptyAggregate(ministry string) Aggregate {
	return Aggregate{
		Ministry:          ministry,
		Members:           []member.Member{},
		Bacentas:          []roster.Bacenta{},
		AttendanceRecords: []attendance.Record{},
		NewBelievers:      []roster.NewBeliever{},
		Confirmations:     []roster.Confirmation{},
		Guests:            []roster.Guest{},
		SourceTenants:     []string{},
	}
}
