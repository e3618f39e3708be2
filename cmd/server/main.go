package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"kds-backend/internal/auth"
	"kds-backend/internal/cache"
	"kds-backend/internal/config"
	"kds-backend/internal/database"
	"kds-backend/internal/db"
	"kds-backend/internal/handlers"
	"kds-backend/internal/health"
	h "kds-backend/internal/http"
	"kds-backend/internal/middleware"
	"kds-backend/internal/monitoring"
	"kds-backend/internal/realtime"
	"kds-backend/internal/repositories"
	"kds-backend/internal/services"
	"kds-backend/internal/timeutil"
	"kds-backend/migrations"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// All elapsed-time math and the history window run on the restaurant's
	// local clock.
	timeutil.SetLocation(cfg.Location)

	pool := db.Connect(cfg)
	defer pool.Close()

	// Redis is optional; without it, logins fall back to bcrypt and monitor
	// reads go straight to Postgres.
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool, migrations.FS, ".")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	healthChecker := health.NewHealthChecker(pool)

	// Ops stats live on their own port so the kitchen API stays minimal.
	go monitoring.NewMonitoringServer(pool, cfg.Monitoring.Port).Start()

	jwtManager := auth.NewJWTManager(cfg)

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	monitorRepo := repositories.NewMonitorRepository(pool)
	ticketRepo := repositories.NewTicketRepository(pool)
	lineRepo := repositories.NewTicketLineRepository(pool)
	modifierRepo := repositories.NewModifierRepository(pool)
	flagRepo := repositories.NewCourseFlagRepository(pool)
	eventRepo := repositories.NewEventRepository(pool)

	// Realtime hub pushes board-change hints to connected displays
	hub := realtime.NewHub()

	// Chit printing is optional; without the bridge, print policies no-op.
	var printer services.ChitPrinter
	if cfg.Printer.Enabled {
		printer = services.NewPrintService(cfg.Printer.BaseURL)
		log.Printf("[Printer] Bridge at %s", cfg.Printer.BaseURL)
	}

	// Services
	monitorService := services.NewMonitorService(monitorRepo)
	boardService := services.NewBoardService(lineRepo, ticketRepo, modifierRepo, flagRepo, monitorService)
	lifecycleService := services.NewLifecycleService(lineRepo, flagRepo, eventRepo, monitorRepo, printer, hub)
	historyService := services.NewHistoryService(lineRepo, modifierRepo, eventRepo, monitorService, printer)
	intakeService := services.NewIntakeService(ticketRepo, eventRepo, hub)
	userService := services.NewUserService(userRepo, jwtManager)
	reportService := services.NewReportService(eventRepo)

	archiveService := services.NewArchiveService(cfg, eventRepo)
	archiveService.Start()
	defer archiveService.Stop()

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	monitorHandler := handlers.NewMonitorHandler(monitorService)
	boardHandler := handlers.NewBoardHandler(boardService, monitorService, hub)
	lineActionHandler := handlers.NewLineActionHandler(lifecycleService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	intakeHandler := handlers.NewIntakeHandler(intakeService)
	eventHandler := handlers.NewEventHandler(eventRepo)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := h.NewRouter(
		authHandler,
		monitorHandler,
		boardHandler,
		lineActionHandler,
		historyHandler,
		intakeHandler,
		eventHandler,
		reportHandler,
		healthHandler,
		authMiddleware,
	)

	handler := middleware.NewCORS(cfg)(router)
	handler = middleware.MetricsMiddleware(handler)
	handler = middleware.PanicRecovery(handler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("KDS backend running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
