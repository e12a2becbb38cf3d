package ministry

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/correction"
	"ministryservice/internal/domain/member"
)

// State is a session's lifecycle phase.
type State string

const (
	StateIdle        State = "idle"
	StateResolving   State = "resolving"
	StateSubscribing State = "subscribing"
	StateLive        State = "live"
	StateTornDown    State = "torn_down"
)

// Session owns the live aggregation pipeline for one caller's ministry view:
// the resolved tenant set, per-tenant snapshots, correction state and the
// merged aggregate. All mutable pipeline state is confined to a single event
// loop goroutine; subscription callbacks, coalescer timers and handlers only
// post closures into the loop, so no update is ever observed half-applied.
//
// A torn-down session cannot be restarted; callers create a fresh one.
type Session struct {
	id       string
	ministry string
	home     string
	current  string

	sources  Sources
	resolver *Resolver
	fetch    *fetcher
	merger   *Merger
	guard    *Guard
	coalesce *coalescer
	bus      domain.EventBus
	recorder Recorder
	log      *zap.Logger

	onUpdate func(Aggregate)

	queue    chan func()
	done     chan struct{}
	stopOnce sync.Once

	mu     sync.Mutex
	state  State
	unsubs []Unsubscribe

	// Loop-confined, never touched outside the event loop.
	snapshots   map[string]TenantBatch
	delivered   map[string]liveDelivered
	corrections *correctionState
	aggregate   Aggregate
}

// liveDelivered tracks which of a tenant's streams have already replaced
// their slice of the batch. The initial fetch runs after the subscriptions
// open and must not roll back a snapshot one of them delivered first.
type liveDelivered struct {
	members    bool
	attendance bool
}

func (s *Session) ID() string       { return s.id }
func (s *Session) Ministry() string { return s.ministry }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	if s.state != StateTornDown {
		s.state = st
	}
	s.mu.Unlock()
}

// MarkOptimistic records an attendance record id as having a local write in
// flight so the next remote snapshot does not clobber it.
func (s *Session) MarkOptimistic(id string) { s.guard.Mark(id) }

// ClearOptimistic retires an in-flight mark after the write is acknowledged
// or abandoned.
func (s *Session) ClearOptimistic(id string) { s.guard.Clear(id) }

func (s *Session) post(fn func()) {
	select {
	case <-s.done:
	case s.queue <- fn:
	}
}

func (s *Session) loop() {
	for {
		select {
		case <-s.done:
			return
		case fn := <-s.queue:
			fn()
		}
	}
}

// run drives the lifecycle: resolve tenants, subscribe everything, then go
// live. Partial failures shrink the view instead of aborting it.
func (s *Session) run(ctx context.Context) {
	s.setState(StateResolving)
	tenants := s.resolver.Resolve(ctx, s.ministry, s.current, s.home)

	select {
	case <-s.done:
		return
	default:
	}

	s.setState(StateSubscribing)
	s.startCorrections(ctx)
	for _, tid := range tenants {
		select {
		case <-s.done:
			return
		default:
		}
		s.startTenant(ctx, tid)
	}

	s.post(func() {
		s.setState(StateLive)
		s.rebuild()
		s.log.Info("session live", zap.Int("tenants", len(tenants)))
	})
}

// rebuild re-merges the cached snapshots and pushes the result. Before the
// session is live, snapshots accumulate silently; the first push happens on
// the transition to Live.
func (s *Session) rebuild() {
	if s.State() != StateLive {
		return
	}
	s.aggregate = s.merger.Merge(s.ministry, s.home, s.snapshots, s.corrections.current())
	if s.recorder != nil {
		s.recorder.MergeApplied()
	}
	if s.onUpdate != nil {
		s.onUpdate(s.aggregate)
	}
}

func (s *Session) startCorrections(ctx context.Context) {
	overrides, err := s.sources.Corrections.FetchOverrides(ctx, s.ministry)
	if err != nil {
		s.log.Warn("override fetch failed", zap.Error(err))
		overrides = nil
	}
	exclusions, err := s.sources.Corrections.FetchExclusions(ctx, s.ministry)
	if err != nil {
		s.log.Warn("exclusion fetch failed", zap.Error(err))
		exclusions = nil
	}
	s.post(func() {
		s.corrections.replaceOverrides(overrides)
		s.corrections.replaceExclusions(exclusions)
	})

	unsub, err := s.sources.Corrections.SubscribeOverrides(ctx, s.ministry,
		func(list []correction.Override) {
			s.post(func() {
				s.corrections.replaceOverrides(list)
				s.rebuild()
			})
		},
		s.subscriptionError("overrides"))
	if err != nil {
		s.log.Warn("override subscription failed", zap.Error(err))
	} else {
		s.addUnsub(unsub)
	}

	unsub, err = s.sources.Corrections.SubscribeExclusions(ctx, s.ministry,
		func(list []correction.Exclusion) {
			s.post(func() {
				s.corrections.replaceExclusions(list)
				s.rebuild()
			})
		},
		s.subscriptionError("exclusions"))
	if err != nil {
		s.log.Warn("exclusion subscription failed", zap.Error(err))
	} else {
		s.addUnsub(unsub)
	}
}

// startTenant opens one tenant's streams and posts its initial batch. A
// tenant whose member subscription cannot be opened contributes nothing; a
// failed attendance subscription only freezes that tenant's attendance.
func (s *Session) startTenant(ctx context.Context, tenantID string) {
	unsub, err := s.sources.Members.SubscribeMembers(ctx, tenantID, s.ministry,
		func(ms []member.Member) {
			prepared := s.fetch.prepareMembers(tenantID, ms)
			s.post(func() {
				b := s.snapshots[tenantID]
				b.Members = prepared
				s.snapshots[tenantID] = b
				d := s.delivered[tenantID]
				d.members = true
				s.delivered[tenantID] = d
				s.rebuild()
			})
		},
		s.subscriptionError("members/"+tenantID))
	if err != nil {
		s.log.Warn("member subscription failed, skipping tenant",
			zap.String("tenant_id", tenantID), zap.Error(err))
		if s.recorder != nil {
			s.recorder.TenantFailure("subscribe_members")
		}
		return
	}
	s.addUnsub(unsub)

	unsub, err = s.sources.Attendance.SubscribeAttendance(ctx, tenantID,
		func(rs []attendance.Record) {
			s.coalesce.Schedule(tenantID, rs)
		},
		s.subscriptionError("attendance/"+tenantID))
	if err != nil {
		s.log.Warn("attendance subscription failed",
			zap.String("tenant_id", tenantID), zap.Error(err))
		if s.recorder != nil {
			s.recorder.TenantFailure("subscribe_attendance")
		}
	} else {
		s.addUnsub(unsub)
	}

	batch := s.fetch.batch(ctx, tenantID, s.ministry)
	s.post(func() {
		// A subscription snapshot that landed first is fresher than this
		// fetch; keep it.
		d := s.delivered[tenantID]
		cur := s.snapshots[tenantID]
		if d.members {
			batch.Members = cur.Members
		}
		if d.attendance {
			batch.AttendanceRecords = cur.AttendanceRecords
		}
		s.snapshots[tenantID] = batch
		s.rebuild()
	})
}

// deliverAttendance receives coalesced batches from the debounce timers.
func (s *Session) deliverAttendance(tenantID string, records []attendance.Record) {
	if s.recorder != nil {
		s.recorder.AttendanceCoalesced()
	}
	s.post(func() {
		s.applyAttendance(tenantID, records)
	})
}

func (s *Session) applyAttendance(tenantID string, incoming []attendance.Record) {
	prev := s.snapshots[tenantID].AttendanceRecords
	replacement, suppressed := guardReplacement(s.guard.marked(), prev, incoming)
	for _, id := range suppressed {
		// A mark protects exactly one snapshot application.
		s.guard.Clear(id)
	}
	if len(suppressed) > 0 {
		if s.recorder != nil {
			s.recorder.OptimisticSuppressed(len(suppressed))
		}
		s.log.Debug("in-flight attendance preserved",
			zap.String("tenant_id", tenantID),
			zap.Int("count", len(suppressed)))
	}

	b := s.snapshots[tenantID]
	b.AttendanceRecords = replacement
	s.snapshots[tenantID] = b
	d := s.delivered[tenantID]
	d.attendance = true
	s.delivered[tenantID] = d
	s.rebuild()
}

func (s *Session) subscriptionError(stream string) func(error) {
	return func(err error) {
		s.log.Warn("subscription error", zap.String("stream", stream), zap.Error(err))
	}
}

func (s *Session) addUnsub(u Unsubscribe) {
	s.mu.Lock()
	if s.state == StateTornDown {
		s.mu.Unlock()
		u()
		return
	}
	s.unsubs = append(s.unsubs, u)
	s.mu.Unlock()
}

// Stop tears the session down: the loop exits, pending debounce timers are
// cancelled and every subscription is released once. Safe to call repeatedly
// and from any goroutine.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.coalesce.Stop()

		s.mu.Lock()
		s.state = StateTornDown
		unsubs := s.unsubs
		s.unsubs = nil
		s.mu.Unlock()

		for _, u := range unsubs {
			u()
		}
		if s.recorder != nil {
			s.recorder.SessionStopped()
		}
		if s.bus != nil {
			s.bus.Publish(context.Background(), domain.Event{
				Type: "ministry.session_stopped",
				Payload: map[string]any{
					"session_id": s.id,
					"ministry":   s.ministry,
				},
			})
		}
		s.log.Info("session stopped")
	})
}

func newSession(svc *service, p StartParams, onUpdate func(Aggregate)) *Session {
	id := uuid.NewString()
	s := &Session{
		id:       id,
		ministry: p.Ministry,
		home:     p.HomeTenant,
		current:  p.CurrentTenant,
		sources:  svc.sources,
		resolver: svc.resolver,
		fetch:    svc.fetch,
		merger:   svc.merger,
		guard:    NewGuard(),
		bus:      svc.bus,
		recorder: svc.recorder,
		log: svc.log.With(
			zap.String("session_id", id),
			zap.String("ministry", p.Ministry)),
		onUpdate:    onUpdate,
		queue:       make(chan func(), 64),
		done:        make(chan struct{}),
		state:       StateIdle,
		snapshots:   make(map[string]TenantBatch),
		delivered:   make(map[string]liveDelivered),
		corrections: newCorrectionState(),
	}
	s.coalesce = newCoalescer(svc.clock, svc.window, s.deliverAttendance)
	return s
}
