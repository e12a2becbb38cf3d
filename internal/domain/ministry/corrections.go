package ministry

import (
	"ministryservice/internal/domain/correction"
)

// correctionState is the authoritative correction view for one session. Every
// snapshot event replaces a whole collection and the lookup set is rebuilt
// from scratch; nothing is patched in place. Only the session loop touches
// it.
type correctionState struct {
	overrides  []correction.Override
	exclusions []correction.Exclusion
	set        correction.Set
}

func newCorrectionState() *correctionState {
	cs := &correctionState{}
	cs.rebuild()
	return cs
}

func (c *correctionState) replaceOverrides(list []correction.Override) {
	c.overrides = list
	c.rebuild()
}

func (c *correctionState) replaceExclusions(list []correction.Exclusion) {
	c.exclusions = list
	c.rebuild()
}

func (c *correctionState) rebuild() {
	c.set = correction.NewSet(c.overrides, c.exclusions)
}

func (c *correctionState) current() correction.Set {
	return c.set
}
