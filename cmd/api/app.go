package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habits/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/core/workers"
)

type application struct {
	router *gin.Engine
	db     *sqlx.DB
	redis  *redis.Client
	worker *workers.PersistWorker

	stopEviction context.CancelFunc
	evictionDone chan struct{}
}

// newApplication opens storage and wires every service behind the router.
// Redis is optional: when it cannot be reached the app runs without the
// snapshot cache and rate limiting. clock drives date-keys and the rollover.
func newApplication(ctx context.Context, cfg *config.Config, clock services.Clock) (*application, error) {
	startTime := time.Now()

	log.Printf("Connecting to database (%s)...", cfg.DBDriver)

	db, err := repository.OpenDatabase(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	log.Println("Database connected successfully.")

	var rdb *redis.Client
	if cfg.RedisEnabled {
		rdb, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Printf("Warning: Redis unavailable, running without cache and rate limiting: %v", err)
			rdb = nil
		} else {
			log.Println("Redis connected successfully.")
		}
	}

	userRepo := repository.NewSQLUserRepository(db)

	var snapshotRepo domain.SnapshotRepository = repository.NewSQLSnapshotRepository(db)
	if rdb != nil {
		snapshotRepo = repository.NewCachedSnapshotRepository(snapshotRepo, rdb)
	}

	persistWorker := workers.NewPersistWorker(snapshotRepo, cfg.SaveDebounce)
	store := services.NewStateStore(snapshotRepo, persistWorker, clock)

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, userRepo)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(services.NewAuthService(userRepo), tokenService),
		HabitHandler:   adapterHTTP.NewHabitHandler(services.NewHabitService(store)),
		StatsHandler:   adapterHTTP.NewStatsHandler(services.NewStatsService(store)),
		DataHandler:    adapterHTTP.NewDataHandler(store),
		ProfileHandler: adapterHTTP.NewProfileHandler(services.NewProfileService(store)),
		TokenService:   tokenService,
		DB:             db,
		Redis:          rdb,
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
		StartTime:      startTime,
	})

	idleTTL := cfg.StateIdleTTL
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	evictionCtx, stopEviction := context.WithCancel(context.Background())
	evictionDone := make(chan struct{})
	go func() {
		defer close(evictionDone)
		store.RunEviction(evictionCtx, idleTTL/2, idleTTL)
	}()

	return &application{
		router:       router,
		db:           db,
		redis:        rdb,
		worker:       persistWorker,
		stopEviction: stopEviction,
		evictionDone: evictionDone,
	}, nil
}

// Close flushes pending debounced saves before releasing connections.
func (a *application) Close(ctx context.Context) error {
	a.stopEviction()
	<-a.evictionDone

	err := a.worker.Stop(ctx)
	if err != nil {
		log.Printf("Warning: some snapshots were not persisted: %v", err)
	}
	if a.redis != nil {
		a.redis.Close()
	}
	a.db.Close()
	return err
}
