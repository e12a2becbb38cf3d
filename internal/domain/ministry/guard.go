package ministry

import (
	"sync"

	"ministryservice/internal/domain/attendance"
)

// Guard tracks attendance record ids with local writes in flight so remote
// snapshots do not clobber them mid-write. Callers mark an id immediately
// before issuing the write and clear it once the write is acknowledged or
// abandoned. This is a best-effort anti-flicker measure, not a correctness
// guarantee: a mark protects exactly one snapshot application, after which
// the remote value applies again.
type Guard struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{ids: make(map[string]struct{})}
}

func (g *Guard) Mark(id string) {
	if id == "" {
		return
	}
	g.mu.Lock()
	g.ids[id] = struct{}{}
	g.mu.Unlock()
}

func (g *Guard) Clear(id string) {
	g.mu.Lock()
	delete(g.ids, id)
	g.mu.Unlock()
}

func (g *Guard) Has(id string) bool {
	g.mu.Lock()
	_, ok := g.ids[id]
	g.mu.Unlock()
	return ok
}

// marked returns a point-in-time copy of the in-flight set.
func (g *Guard) marked() map[string]struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.ids) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(g.ids))
	for id := range g.ids {
		out[id] = struct{}{}
	}
	return out
}

// guardReplacement builds the attendance set that replaces previous when an
// incoming snapshot arrives while ids are marked in flight. Marked records
// keep their previously known value; everything else takes the incoming
// value. It returns the ids it actually suppressed so the caller can retire
// their marks.
func guardReplacement(marked map[string]struct{}, previous, incoming []attendance.Record) ([]attendance.Record, []string) {
	if len(marked) == 0 {
		return incoming, nil
	}

	hit := make(map[string]struct{})
	out := make([]attendance.Record, 0, len(incoming))
	for _, rec := range incoming {
		if _, ok := marked[rec.ID]; ok {
			hit[rec.ID] = struct{}{}
			continue
		}
		out = append(out, rec)
	}
	for _, rec := range previous {
		if _, ok := marked[rec.ID]; ok {
			out = append(out, rec)
			hit[rec.ID] = struct{}{}
		}
	}

	suppressed := make([]string, 0, len(hit))
	for id := range hit {
		suppressed = append(suppressed, id)
	}
	return out, suppressed
}
