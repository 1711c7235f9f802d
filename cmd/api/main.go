package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"meetingroom/internal/config"
	"meetingroom/internal/database"
	"meetingroom/internal/domain/event"
	"meetingroom/internal/jobs"
	"meetingroom/internal/modules/booking"
	"meetingroom/internal/modules/catalog"
	"meetingroom/internal/modules/notification"
	"meetingroom/internal/pkg/clock"
	jwtsvc "meetingroom/internal/pkg/jwt"
	"meetingroom/internal/pkg/lock"
	"meetingroom/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := database.DefaultOptions()
	opts.LogLevel = database.ParseLogLevel(cfg.Database.LogLevel)
	db, err := database.Connect(cfg.Database.URL, opts)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	locker, closeLocker := newLocker(ctx, cfg)
	defer closeLocker()

	store := repository.NewStore(db)
	hub := notification.NewHub()
	defer hub.Close()
	publisher := event.Publishers{hub}
	clk := clock.Real{}

	bookingService := booking.NewService(store, locker, publisher, clk, cfg.Location)
	catalogService := catalog.NewService(store, locker, publisher, clk)

	j := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)

	r := newRouter(app{
		booking:        bookingService,
		catalog:        catalogService,
		hub:            hub,
		jwt:            j,
		allowedOrigins: cfg.AllowedOrigins,
	})

	scheduler := cron.New(cron.WithLocation(cfg.Location))
	if _, err := jobs.RegisterCompletionSweep(scheduler, cfg.CompletionSchedule, cfg.CompletionGrace, bookingService); err != nil {
		log.Fatal("failed to schedule completion sweep: ", err)
	}
	scheduler.Start()
	log.Println("Cron jobs initialized successfully")

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	<-scheduler.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// newLocker shares booking locks through Redis when it is configured.
func newLocker(ctx context.Context, cfg *config.Config) (lock.Locker, func()) {
	if !cfg.Redis.Enabled() {
		log.Println("REDIS_ADDR not set, using in-process booking locks")
		return lock.NewKeyedMutex(), func() {}
	}

	rdb, err := lock.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Username, cfg.Redis.Password)
	if err != nil {
		log.Fatal("redis connection failed: ", err)
	}
	log.Printf("using redis booking locks addr=%s", cfg.Redis.Addr)
	return lock.NewRedisLocker(rdb, cfg.Redis.KeyPrefix), func() { _ = rdb.Close() }
}
