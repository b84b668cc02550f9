package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"agentboard/internal/api"
	"agentboard/internal/knowledge"
	"agentboard/internal/logstore"
	"agentboard/internal/procctl"
	"agentboard/internal/status"
	"agentboard/internal/taskstore"
)

func main() {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	dataRoot := os.Getenv("DATA_ROOT")
	if dataRoot == "" {
		dataRoot = "."
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	logs, err := logstore.Connect(ctx, redisAddr)
	cancel()
	if err != nil {
		log.Fatalf("failed to connect to log store: %v", err)
	}
	defer func() {
		if err := logs.Close(); err != nil {
			log.Printf("error closing log store: %v", err)
		}
	}()

	kb, closer := initKnowledgeStore()
	if closer != nil {
		defer func() {
			if err := closer(); err != nil {
				log.Printf("error closing knowledge store: %v", err)
			}
		}()
	}

	tasks := taskstore.NewStore(taskstore.NewFileSelector(dataRoot))
	controller := procctl.NewController(procctl.SystemLister{})
	aggregator := status.NewStatic()

	server := api.NewServer(tasks, logs, controller, aggregator, kb)

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	e.Logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}

	e.Logger.Info("server stopped")
}

// initKnowledgeStore initializes the milestone store based on
// environment variables. Returns the store and an optional closer.
func initKnowledgeStore() (knowledge.Store, func() error) {
	storeType := os.Getenv("KNOWLEDGE_STORE_TYPE")
	if storeType == "" {
		storeType = "memory"
	}

	switch storeType {
	case "postgres":
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			log.Fatal("DATABASE_URL environment variable is required when KNOWLEDGE_STORE_TYPE=postgres")
		}

		log.Println("initializing PostgreSQL knowledge store")
		pgStore, err := knowledge.NewPostgresStore(dbURL)
		if err != nil {
			log.Fatalf("failed to initialize PostgreSQL knowledge store: %v", err)
		}

		log.Println("PostgreSQL knowledge store initialized successfully")
		return pgStore, pgStore.Close

	case "memory":
		log.Println("using in-memory knowledge store (milestones will not persist)")
		return knowledge.NewInMemoryStore(), nil

	default:
		log.Fatalf("unknown KNOWLEDGE_STORE_TYPE: %s (valid options: memory, postgres)", storeType)
		return nil, nil
	}
}
