package roster

import "time"

// Roster collections are tenant-scoped supporting records carried along into
// the ministry aggregate without deduplication.

// Bacenta is a small fellowship group inside one tenant.
type Bacenta struct {
	ID       string
	TenantID string
	Name     string
	LeaderID string
}

type NewBeliever struct {
	ID         string
	TenantID   string
	FirstName  string
	LastName   string
	DateJoined time.Time
}

type Confirmation struct {
	ID       string
	TenantID string
	MemberID string
	Date     time.Time
}

type Guest struct {
	ID        string
	TenantID  string
	FirstName string
	LastName  string
	InvitedBy string
}
