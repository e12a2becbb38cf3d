package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Record is one attendance mark, scoped to the tenant that produced it.
// Attendance never crosses tenant boundaries; relevance to a ministry view is
// derived by membership after merging.
type Record struct {
	ID       string
	TenantID string
	MemberID string
	Date     time.Time
	Status   Status
}
