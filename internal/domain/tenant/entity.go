package tenant

import "time"

// Tenant is one isolated data partition (a congregation, campus or council).
// Every record in the system carries the ID of the tenant that owns it.
type Tenant struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
