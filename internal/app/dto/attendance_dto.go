package dto

type AttendanceRecord struct {
	RecordID string `json:"record_id"`
	TenantID string `json:"tenant_id"`
	MemberID string `json:"member_id"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}
