package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pixel-hunt-system/config"
	"pixel-hunt-system/handlers"
	"pixel-hunt-system/middleware"
	"pixel-hunt-system/models"
	"pixel-hunt-system/services"
	"pixel-hunt-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatal("failed to read environment: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Configuration store: R2 when a bucket is set, local directory otherwise ---
	var store config.Store
	if env.ConfigBucket != "" {
		r2, err := config.NewR2Store(ctx, env.R2AccountID, env.R2AccessKeyID, env.R2AccessKeySecret, env.ConfigBucket, env.ConfigPrefix)
		if err != nil {
			log.Fatal("failed to initialize R2 config store: ", err)
		}
		store = r2
		log.Printf("✅ Configuration stored in R2 bucket %s/%s", env.ConfigBucket, env.ConfigPrefix)
	} else {
		store = config.NewDirStore(env.ConfigDir)
		log.Printf("✅ Configuration stored in %s", env.ConfigDir)
	}

	cfg := config.NewManager(store)
	if err := cfg.Load(ctx); err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	// --- Database: wallets, inventories and the completion ledger ---
	economy := services.NewEconomyProvider()
	var (
		wallets   *services.WalletService
		inventory models.Inventory
		ledger    *services.CompletionLedger
	)
	if env.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(env.DatabaseURL), &gorm.Config{})
		if err != nil {
			log.Fatal("failed to connect to database:", err)
		}
		if err := db.AutoMigrate(
			&models.Wallet{},
			&models.InventoryItem{},
			&models.HuntCompletion{},
		); err != nil {
			log.Fatal("failed to migrate database:", err)
		}
		wallets = services.NewWalletService(db, env.DefaultCurrency)
		inventory = services.NewInventoryService(db)
		ledger = services.NewCompletionLedger(db)
	} else {
		log.Println("⚠️  DATABASE_URL not set — currency and item rewards are disabled")
	}

	pool := services.NewRewardPool(cfg, economy, inventory)
	if err := pool.Reload(); err != nil {
		log.Fatal("failed to load reward pool: ", err)
	}
	// Currency rewards can only be built while an economy is loaded.
	economy.OnChange(func(models.Economy) {
		if err := pool.Reload(); err != nil {
			log.Printf("❌ Failed to rebuild reward pool: %v", err)
		}
	})

	clock := clockwork.NewRealClock()
	scheduler, err := services.NewCronScheduler(clock)
	if err != nil {
		log.Fatal("failed to start scheduler: ", err)
	}

	api, err := services.NewHuntAPI(models.DefaultCatalog(), cfg, pool, scheduler, clock)
	if err != nil {
		log.Fatal("failed to create hunt API: ", err)
	}
	if err := api.SetupBoards(); err != nil {
		log.Fatal("failed to set up hunt boards: ", err)
	}

	if wallets != nil {
		go workers.WatchEconomy(ctx, wallets, economy, env.EconomyPollInterval)
	}

	var recorder services.CompletionRecorder
	var history handlers.CompletionHistory
	if ledger != nil {
		recorder, history = ledger, ledger
	}
	listener := services.NewCaptureListener(api.HuntBoardRegistry(), recorder)

	app := fiber.New()
	app.Use(recover.New())

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware(env.GatewayToken))

	allowedOrigins := make([]string, 0, len(env.AllowedOrigins))
	for _, origin := range env.AllowedOrigins {
		allowedOrigins = append(allowedOrigins, strings.TrimSpace(origin))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(allowedOrigins, ","),
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID, X-User-Name, X-User-Roles",
		MaxAge:       86400,
	}))

	handlers.SetupHuntRoutes(app, &handlers.HuntRoutes{
		API:      api,
		Listener: listener,
		Messages: cfg,
		History:  history,
		Reload: func(ctx context.Context) error {
			if err := cfg.Reload(ctx); err != nil {
				return err
			}
			if err := pool.Reload(); err != nil {
				return err
			}
			return api.SetupBoards()
		},
	})

	go func() {
		if err := app.Listen(env.ListenAddr); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on %s", env.ListenAddr)
	log.Printf("✅ %d hunt board(s) active", len(api.HuntBoardRegistry().HuntBoards()))
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	for _, board := range api.HuntBoardRegistry().HuntBoards() {
		board.Close()
	}
	if err := scheduler.Shutdown(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}
}
