package ministry

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"ministryservice/internal/domain"
	"ministryservice/internal/domain/correction"
)

// StartParams identifies the ministry view a caller wants.
type StartParams struct {
	Ministry      string
	HomeTenant    string
	CurrentTenant string
}

func (p StartParams) validate() error {
	if strings.TrimSpace(p.Ministry) == "" {
		return &domain.DomainError{
			Code:       domain.ErrorCodeValidation,
			Message:    "ministry name is required",
			HTTPStatus: http.StatusBadRequest,
		}
	}
	return nil
}

// Config carries the tunable engine knobs.
type Config struct {
	Policy         Policy
	DebounceWindow time.Duration
}

// Service starts live aggregation sessions and serves one-shot aggregate
// snapshots.
type Service interface {
	// StartSession resolves, subscribes and goes live asynchronously. The
	// returned session is immediately usable for Stop and optimistic marks;
	// onUpdate receives every merged aggregate, starting with the one pushed
	// on the transition to Live. onUpdate runs on the session loop and must
	// not block.
	StartSession(ctx context.Context, p StartParams, onUpdate func(Aggregate)) (*Session, error)
	// Snapshot resolves and fetches once, without subscriptions.
	Snapshot(ctx context.Context, p StartParams) (Aggregate, error)
}

type service struct {
	sources  Sources
	resolver *Resolver
	fetch    *fetcher
	merger   *Merger
	clock    domain.Clock
	window   time.Duration
	bus      domain.EventBus
	recorder Recorder
	log      *zap.Logger
}

func NewService(sources Sources, cfg Config, clock domain.Clock, bus domain.EventBus, recorder Recorder, log *zap.Logger) Service {
	if clock == nil {
		clock = domain.RealClock()
	}
	window := cfg.DebounceWindow
	if window <= 0 {
		window = 100 * time.Millisecond
	}
	return &service{
		sources:  sources,
		resolver: NewResolver(sources.Directory, sources.Members, recorder, log),
		fetch:    newFetcher(sources, recorder, log),
		merger:   NewMerger(cfg.Policy, log),
		clock:    clock,
		window:   window,
		bus:      bus,
		recorder: recorder,
		log:      log,
	}
}

func (s *service) StartSession(ctx context.Context, p StartParams, onUpdate func(Aggregate)) (*Session, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	sess := newSession(s, p, onUpdate)
	go sess.loop()
	go sess.run(ctx)

	if s.recorder != nil {
		s.recorder.SessionStarted()
	}
	if s.bus != nil {
		s.bus.Publish(ctx, domain.Event{
			Type: "ministry.session_started",
			Payload: map[string]any{
				"session_id": sess.ID(),
				"ministry":   p.Ministry,
			},
		})
	}
	return sess, nil
}

func (s *service) Snapshot(ctx context.Context, p StartParams) (Aggregate, error) {
	if err := p.validate(); err != nil {
		return Aggregate{}, err
	}

	tenants := s.resolver.Resolve(ctx, p.Ministry, p.CurrentTenant, p.HomeTenant)

	snapshots := make(map[string]TenantBatch, len(tenants))
	for _, tid := range tenants {
		snapshots[tid] = s.fetch.batch(ctx, tid, p.Ministry)
	}

	overrides, err := s.sources.Corrections.FetchOverrides(ctx, p.Ministry)
	if err != nil {
		s.log.Warn("override fetch failed", zap.String("ministry", p.Ministry), zap.Error(err))
		overrides = nil
	}
	exclusions, err := s.sources.Corrections.FetchExclusions(ctx, p.Ministry)
	if err != nil {
		s.log.Warn("exclusion fetch failed", zap.String("ministry", p.Ministry), zap.Error(err))
		exclusions = nil
	}

	agg := s.merger.Merge(p.Ministry, p.HomeTenant, snapshots, correction.NewSet(overrides, exclusions))
	if s.recorder != nil {
		s.recorder.MergeApplied()
	}
	return agg, nil
}
