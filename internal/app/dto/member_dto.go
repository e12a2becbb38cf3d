package dto

type Member struct {
	MemberID             string `json:"member_id"`
	TenantID             string `json:"tenant_id"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Ministry             string `json:"ministry,omitempty"`
	BacentaID            string `json:"bacenta_id,omitempty"`
	Role                 string `json:"role,omitempty"`
	Position             string `json:"position,omitempty"`
	Frozen               bool   `json:"frozen"`
	IsActive             bool   `json:"is_active"`
	NativeMinistryMember bool   `json:"native_ministry_member"`
}
