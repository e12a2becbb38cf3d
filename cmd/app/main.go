package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"go.uber.org/zap"

	"ministryservice/internal/app/config"
	httpapi "ministryservice/internal/app/http"
	"ministryservice/internal/app/http/handler"
	"ministryservice/internal/domain/attendance"
	"ministryservice/internal/domain/correction"
	"ministryservice/internal/domain/member"
	"ministryservice/internal/domain/ministry"
	"ministryservice/internal/domain/stats"
	"ministryservice/internal/domain/tenant"
	"ministryservice/internal/infrastructure/async"
	"ministryservice/internal/infrastructure/db/pg"
	"ministryservice/internal/infrastructure/live"
	"ministryservice/internal/infrastructure/logging"
	"ministryservice/internal/infrastructure/metrics"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("db ping error", zap.Error(err))
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose dialect error", zap.Error(err))
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatal("goose up error", zap.Error(err))
	}

	uow := pg.NewTxManager(db)

	eventBus := async.NewAsyncEventBus(ctx, cfg.EventPoolSize, log)
	defer eventBus.Close()

	var feed live.Feed
	if cfg.RedisAddr != "" {
		redisFeed, err := live.NewRedisFeed(cfg.RedisAddr, log)
		if err != nil {
			log.Fatal("redis connect error", zap.Error(err))
		}
		defer redisFeed.Close()

		if err := redisFeed.StartForwarder(ctx); err != nil {
			log.Fatal("redis subscribe error", zap.Error(err))
		}
		feed = redisFeed
	} else {
		feed = live.NewMemoryFeed()
	}

	tenantRepo := pg.NewTenantRepository(db)
	memberRepo := pg.NewMemberRepository(db)
	attendanceRepo := pg.NewAttendanceRepository(db)
	rosterRepo := pg.NewRosterRepository(db)
	correctionRepo := pg.NewCorrectionRepository(db)
	statsRepo := pg.NewStatsRepository(db)

	liveSource := live.NewSource(memberRepo, attendanceRepo, correctionRepo, feed)

	policy := ministry.DefaultPolicy()
	if cfg.MergePrecedence == "ministry" {
		policy = ministry.Policy{Precedence: ministry.PreferMinistry}
	}

	engineMetrics := metrics.New()

	ministrySvc := ministry.NewService(
		ministry.Sources{
			Members:     liveSource,
			Attendance:  liveSource,
			Roster:      rosterRepo,
			Corrections: liveSource,
			Directory:   tenantRepo,
		},
		ministry.Config{
			Policy:         policy,
			DebounceWindow: cfg.DebounceWindow,
		},
		nil,
		eventBus,
		engineMetrics,
		log,
	)

	tenantSvc := tenant.NewService(uow, tenantRepo, eventBus)
	memberSvc := member.NewService(uow, memberRepo, eventBus, feed)
	attendanceSvc := attendance.NewService(uow, attendanceRepo, memberRepo, eventBus, feed)
	correctionSvc := correction.NewService(uow, correctionRepo, eventBus, feed)
	statsSvc := stats.NewService(statsRepo)

	h := handler.New(tenantSvc, memberSvc, attendanceSvc, correctionSvc, ministrySvc, statsSvc, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:        cfg.HTTPAddr,
		Handler:     router,
		ReadTimeout: 5 * time.Second,
		// No write timeout: /ministry/stream holds its connection open.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
		// Streams watch this context, so canceling it drains them before
		// Shutdown gives up.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")

	h.CloseSessions()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
