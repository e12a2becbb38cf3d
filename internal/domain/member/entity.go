package member

// Member is one person's record inside one tenant partition. The same person
// may have a second copy inside the dedicated ministry tenant; the two copies
// share ID but differ in TenantID.
type Member struct {
	ID        string
	TenantID  string
	FirstName string
	LastName  string
	Ministry  string
	BacentaID string
	Role      string
	Position  string
	Frozen    bool
	IsActive  bool
	// NativeMinistryMember marks accounts created directly inside the
	// ministry tenant rather than mirrored from an origin tenant.
	NativeMinistryMember bool
}

// Key is the composite identity of a member: the bare ID alone is not unique
// across partitions.
type Key struct {
	TenantID string
	MemberID string
}

func KeyOf(m Member) Key {
	return Key{TenantID: m.TenantID, MemberID: m.ID}
}

func (k Key) String() string {
	return k.TenantID + "/" + k.MemberID
}
