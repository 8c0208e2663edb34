package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/canchapp/cancha-reservation/internal/config"
	"github.com/canchapp/cancha-reservation/internal/database"
	"github.com/canchapp/cancha-reservation/internal/handler"
	"github.com/canchapp/cancha-reservation/internal/middleware"
	"github.com/canchapp/cancha-reservation/internal/queue"
	"github.com/canchapp/cancha-reservation/internal/repository"
	"github.com/canchapp/cancha-reservation/internal/router"
	"github.com/canchapp/cancha-reservation/internal/storage"
	"github.com/canchapp/cancha-reservation/internal/store"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// Facility catalog lives in MySQL; owners are its only writers.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	facilities := repository.NewFacilityRepo(db)

	// Session state persists in Redis with an in-memory fallback so the
	// app keeps working through a Redis outage.  The same client backs
	// rate limiting and the public response cache; when it is nil those
	// middlewares disable themselves.
	rdb := config.NewRedisClient()
	var adapter storage.Adapter = storage.NewMemoryAdapter()
	if rdb != nil {
		adapter = storage.NewFailoverAdapter(storage.NewRedisAdapter(rdb, cfg.StatePrefix), storage.NewMemoryAdapter())
	} else {
		log.Printf("redis unavailable, session state is memory-only")
	}

	st := store.New(adapter, facilities)
	if err := st.Load(context.Background()); err != nil {
		log.Printf("state load failed, starting empty: %v", err)
	}

	// Background consumer mirrors reservation events into logs/.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, &handler.PublicHandler{Facilities: facilities}, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterCustomer(e, handler.NewCustomerHandler(st, facilities))
	router.RegisterOwner(e, handler.NewOwnerHandler(facilities, st), cfg.OwnerSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
