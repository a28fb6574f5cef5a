package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/targihasta/fair-lottery/internal/config"
	"github.com/targihasta/fair-lottery/internal/drawing"
	"github.com/targihasta/fair-lottery/internal/handler"
	"github.com/targihasta/fair-lottery/internal/ledger"
	"github.com/targihasta/fair-lottery/internal/middleware"
	"github.com/targihasta/fair-lottery/internal/queue"
	"github.com/targihasta/fair-lottery/internal/registry"
	"github.com/targihasta/fair-lottery/internal/router"
	"github.com/targihasta/fair-lottery/internal/store"
)

func main() {
	// .env is optional; real env vars win over file values.
	_ = godotenv.Load()

	cfg := config.Load()

	// Durable store: Redis when reachable, otherwise an in-memory
	// fallback so the booth keeps running (state then lives only for
	// the process lifetime).
	var kv store.KV
	rdb := config.NewRedisClient()
	if rdb != nil {
		kv = store.NewRedisKV(rdb)
	} else {
		log.Println("redis unreachable, falling back to in-memory store")
		kv = store.NewMemoryKV()
	}
	st := store.New(kv)

	// Load prior state; absent or unreadable records become defaults.
	orders, exhibitors, adminPass := st.LoadAll(context.Background())
	log.Printf("loaded state: %d orders, %d exhibitors", len(orders), len(exhibitors))

	cred := registry.NewCredential(st, adminPass)
	reg := registry.New(st, exhibitors)

	// The ledger's clear path exports a full snapshot file before any
	// data is destroyed.
	var led *ledger.Ledger
	led = ledger.New(st, orders, func(ctx context.Context) error {
		snap := store.ExportSnapshot(led.List(), reg.List(), cred.Current())
		path, err := store.WriteBackupFile(cfg.BackupDir, snap)
		if err != nil {
			return err
		}
		log.Printf("automatic backup written: %s", path)
		return nil
	})

	engine := drawing.NewEngine()

	authH := handler.NewAuthHandler(cfg, reg, cred)
	orderH := handler.NewOrderHandler(led)
	adminH := handler.NewAdminHandler(cfg, led, reg, cred, st)
	drawH := handler.NewDrawingHandler(led, engine)

	e := echo.New()
	router.RegisterRoutes(e)
	loginLimiter := middleware.NewLoginLimiter(config.LoadRateLimitConfig(), rdb)
	router.RegisterAuth(e, authH, cfg.JWTSecret, loginLimiter)
	router.RegisterOrders(e, orderH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, drawH, cfg.JWTSecret)

	// Optional in-process audit consumer for winner events.
	if cfg.ConsumerOn {
		go func() {
			if err := queue.StartWinnerConsumer(); err != nil {
				log.Printf("winner consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
