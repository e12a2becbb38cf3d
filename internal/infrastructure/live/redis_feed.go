package live

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const channelPrefix = "live:"

// RedisFeed spans change signals across nodes over Redis Pub/Sub. Every
// signal, including the publisher's own, travels through Redis and is fanned
// out locally by the embedded MemoryFeed, so single-node and multi-node
// deployments share one dispatch path.
type RedisFeed struct {
	rdb   *goredis.Client
	local *MemoryFeed
	log   *zap.Logger
}

func NewRedisFeed(addr string, log *zap.Logger) (*RedisFeed, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisFeed{
		rdb:   rdb,
		local: NewMemoryFeed(),
		log:   log,
	}, nil
}

func channelName(collection, scope string) string {
	return channelPrefix + collection + ":" + scope
}

func parseChannel(name string) (collection, scope string, ok bool) {
	rest, found := strings.CutPrefix(name, channelPrefix)
	if !found {
		return "", "", false
	}
	parts := strings.SplitN(rest, ":", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// NotifyChange publishes the signal to Redis only; local dispatch happens
// when the forwarder receives the echo. Publish failures are logged and
// dropped, a writer is never failed over a lost signal.
func (f *RedisFeed) NotifyChange(ctx context.Context, scope, collection string) {
	if err := f.rdb.Publish(ctx, channelName(collection, scope), "1").Err(); err != nil {
		f.log.Warn("live signal publish failed",
			zap.String("collection", collection),
			zap.String("scope", scope),
			zap.Error(err))
	}
}

func (f *RedisFeed) Subscribe(scope, collection string, fn func()) func() {
	return f.local.Subscribe(scope, collection, fn)
}

// StartForwarder opens the pattern subscription and pumps incoming signals
// into the local dispatcher until ctx is cancelled.
func (f *RedisFeed) StartForwarder(ctx context.Context) error {
	sub := f.rdb.PSubscribe(ctx, channelPrefix+"*")

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				collection, scope, ok := parseChannel(m.Channel)
				if !ok {
					f.log.Warn("malformed live channel", zap.String("channel", m.Channel))
					continue
				}
				f.local.dispatch(scope, collection)
			}
		}
	}()

	return nil
}

func (f *RedisFeed) Close() error {
	return f.rdb.Close()
}
