package dto

import "time"

type Override struct {
	Ministry  string    `json:"ministry"`
	TenantID  string    `json:"tenant_id"`
	MemberID  string    `json:"member_id"`
	Frozen    *bool     `json:"frozen,omitempty"`
	Role      *string   `json:"role,omitempty"`
	Position  *string   `json:"position,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Exclusion struct {
	Ministry  string    `json:"ministry"`
	TenantID  string    `json:"tenant_id"`
	MemberID  string    `json:"member_id"`
	CreatedAt time.Time `json:"created_at"`
}
