package dto

type MemberAttendanceStat struct {
	TenantID string `json:"tenant_id"`
	MemberID string `json:"member_id"`
	Total    int    `json:"total"`
	Present  int    `json:"present"`
	Absent   int    `json:"absent"`
}

type DateAttendanceStat struct {
	Date    string `json:"date"`
	Total   int    `json:"total"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
}

type StatsResponse struct {
	PerMember []MemberAttendanceStat `json:"per_member,omitempty"`
	PerDate   []DateAttendanceStat   `json:"per_date,omitempty"`
}
