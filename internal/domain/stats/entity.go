package stats

import "time"

type MemberAttendanceStat struct {
	TenantID string
	MemberID string
	Total    int
	Present  int
	Absent   int
}

type DateAttendanceStat struct {
	Date    time.Time
	Total   int
	Present int
	Absent  int
}
