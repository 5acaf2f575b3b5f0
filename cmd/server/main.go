package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"snake-cast/internal/api"
	"snake-cast/internal/config"
	"snake-cast/internal/game"
	"snake-cast/internal/streaming"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("💡 No .env file found, using environment variables only")
	}

	log.Println("🐍 ================================")
	log.Println("🐍  SNAKE CAST - SIMULATION CORE")
	log.Println("🐍 ================================")

	// Load centralized configuration (SSOT - Single Source of Truth)
	appConfig := config.Load()
	gameCfg := appConfig.Game
	serverCfg := appConfig.Server
	renderCfg := appConfig.Render

	dir, ok := game.ParseDirection(gameCfg.InitialDirection)
	if !ok {
		log.Fatalf("❌ Invalid SNAKE_DIRECTION %q: want up, down, left or right", gameCfg.InitialDirection)
	}

	log.Printf("🎮 Config: %dx%d board, start length %d, %d TPS, heading %s",
		gameCfg.Rows, gameCfg.Cols, gameCfg.StartLength, gameCfg.TickRate, dir)

	engine, err := game.NewEngine(game.Config{
		Rows:             gameCfg.Rows,
		Cols:             gameCfg.Cols,
		StartLength:      gameCfg.StartLength,
		PointsPerFood:    gameCfg.PointsPerFood,
		InitialDirection: dir,
		TickRate:         gameCfg.TickRate,
	})
	if err != nil {
		log.Fatalf("❌ Engine config rejected: %v", err)
	}

	// Start event log
	if err := engine.StartEventLog(serverCfg.EventLogPath); err != nil {
		log.Printf("⚠️ Event log disabled: %v", err)
	} else {
		log.Printf("📝 Event log: %s", serverCfg.EventLogPath)
	}

	// Start debug server (metrics + pprof, localhost only)
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(api.DefaultObservabilityConfig()); err != nil {
			log.Printf("⚠️ Debug server disabled: %v", err)
		}
	}

	// Frame renderer for /api/frame.png
	renderer := streaming.NewRenderer(gameCfg.Rows, gameCfg.Cols, renderCfg.CellSize, renderCfg.Margin)
	log.Printf("🖼️ Frame renderer: %dx%d px", renderer.Width(), renderer.Height())

	// Broadcast poll runs faster than the tick so viewers see every
	// published snapshot
	tickInterval := time.Second / time.Duration(gameCfg.TickRate)
	server := api.NewServer(engine, renderer, tickInterval/2)

	// Sample simulation gauges for Prometheus
	metricsStop := make(chan struct{})
	api.StartMetricsPoller(engine, time.Second, metricsStop)

	engine.Start()
	log.Println("✅ Simulation started")

	addr := ":" + strconv.Itoa(serverCfg.Port)
	go func() {
		log.Printf("🌐 API server on http://localhost%s", addr)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ Server ready! Press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 Shutting down...")
	close(metricsStop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		log.Printf("⚠️ HTTP shutdown: %v", err)
	}

	engine.Stop()
	engine.StopEventLog()
	log.Println("👋 Goodbye!")
}
