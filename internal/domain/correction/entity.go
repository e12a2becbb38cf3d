package correction

import (
	"time"

	"ministryservice/internal/domain/member"
)

// Override is a ministry-scoped field patch applied on top of a merged member
// copy. Nil fields are not overridden.
type Override struct {
	Ministry  string
	TenantID  string
	MemberID  string
	Frozen    *bool
	Role      *string
	Position  *string
	UpdatedAt time.Time
}

func (o Override) Key() member.Key {
	return member.Key{TenantID: o.TenantID, MemberID: o.MemberID}
}

// Empty reports whether the patch carries no fields at all.
func (o Override) Empty() bool {
	return o.Frozen == nil && o.Role == nil && o.Position == nil
}

// Apply returns a copy of m with every non-nil patch field replaced.
func (o Override) Apply(m member.Member) member.Member {
	if o.Frozen != nil {
		m.Frozen = *o.Frozen
	}
	if o.Role != nil {
		m.Role = *o.Role
	}
	if o.Position != nil {
		m.Position = *o.Position
	}
	return m
}

// Exclusion suppresses one member copy from the ministry aggregate. It has no
// payload beyond its key.
type Exclusion struct {
	Ministry  string
	TenantID  string
	MemberID  string
	CreatedAt time.Time
}

func (e Exclusion) Key() member.Key {
	return member.Key{TenantID: e.TenantID, MemberID: e.MemberID}
}

// Set is the authoritative in-memory correction state for one ministry. It is
// rebuilt wholesale from every snapshot event rather than patched, so there is
// no drift between events.
type Set struct {
	Overrides  map[member.Key]Override
	Exclusions map[member.Key]struct{}
}

func NewSet(overrides []Override, exclusions []Exclusion) Set {
	s := Set{
		Overrides:  make(map[member.Key]Override, len(overrides)),
		Exclusions: make(map[member.Key]struct{}, len(exclusions)),
	}
	for _, o := range overrides {
		s.Overrides[o.Key()] = o
	}
	for _, e := range exclusions {
		s.Exclusions[e.Key()] = struct{}{}
	}
	return s
}

func (s Set) OverrideFor(k member.Key) (Override, bool) {
	o, ok := s.Overrides[k]
	return o, ok
}

func (s Set) Excluded(k member.Key) bool {
	_, ok := s.Exclusions[k]
	return ok
}
