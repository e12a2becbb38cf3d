package ministry

// Precedence decides which copy of a member survives de-duplication when the
// same person exists both in an origin tenant and in the ministry's home
// tenant. The rule has flipped before, so it stays configurable instead of
// being baked into the merge.
type Precedence int

const (
	// PreferOrigin keeps the copy owned by the member's origin tenant and
	// drops the ministry-tenant duplicate.
	PreferOrigin Precedence = iota
	// PreferMinistry keeps the ministry-tenant copy and drops origin
	// duplicates.
	PreferMinistry
)

// Policy bundles the tunable merge rules.
type Policy struct {
	Precedence Precedence
}

func DefaultPolicy() Policy {
	return Policy{Precedence: PreferOrigin}
}

// prefers reports whether a copy living in tenantID wins de-duplication for a
// ministry homed in homeTenant.
func (p Policy) prefers(tenantID, homeTenant string) bool {
	if p.Precedence == PreferMinistry {
		return tenantID == homeTenant
	}
	return tenantID != homeTenant
}
