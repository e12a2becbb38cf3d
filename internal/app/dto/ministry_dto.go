package dto

type Bacenta struct {
	BacentaID string `json:"bacenta_id"`
	TenantID  string `json:"tenant_id"`
	Name      string `json:"name"`
	LeaderID  string `json:"leader_id,omitempty"`
}

type NewBeliever struct {
	BelieverID string `json:"believer_id"`
	TenantID   string `json:"tenant_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	DateJoined string `json:"date_joined"`
}

type Confirmation struct {
	ConfirmationID string `json:"confirmation_id"`
	TenantID       string `json:"tenant_id"`
	MemberID       string `json:"member_id"`
	Date           string `json:"date"`
}

type Guest struct {
	GuestID   string `json:"guest_id"`
	TenantID  string `json:"tenant_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	InvitedBy string `json:"invited_by,omitempty"`
}

// Aggregate is the merged cross-tenant ministry view pushed to clients. All
// slices are present even when empty.
type Aggregate struct {
	Ministry          string             `json:"ministry"`
	Members           []Member           `json:"members"`
	Bacentas          []Bacenta          `json:"bacentas"`
	AttendanceRecords []AttendanceRecord `json:"attendance_records"`
	NewBelievers      []NewBeliever      `json:"new_believers"`
	Confirmations     []Confirmation     `json:"confirmations"`
	Guests            []Guest            `json:"guests"`
	SourceTenants     []string           `json:"source_tenants"`
}
