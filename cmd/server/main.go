package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/folio/internal/assistant"
	"github.com/agenthands/folio/internal/config"
	"github.com/agenthands/folio/internal/driver"
	"github.com/agenthands/folio/internal/geo"
	"github.com/agenthands/folio/internal/llm"
	"github.com/agenthands/folio/internal/logging"
	"github.com/agenthands/folio/internal/metrics"
	"github.com/agenthands/folio/internal/portfolio"
	"github.com/agenthands/folio/internal/server"
	"github.com/agenthands/folio/internal/skills"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Server.Environment, os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	collector := metrics.NewCollector("folio")

	store := portfolio.NewStore(cfg.Data.Dir, logger, collector)
	if err := store.Load(); err != nil {
		return err
	}
	if cfg.Data.Watch {
		go func() {
			if err := store.Watch(ctx); err != nil {
				logger.Error("data watcher stopped", zap.Error(err))
			}
		}()
	}

	var skillsSource skills.Source = store.SkillsSource()
	if cfg.Skills.Source == "neo4j" {
		d, err := driver.NewNeo4jDriver(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Password, logger)
		if err != nil {
			return err
		}
		defer d.Close(context.Background())
		skillsSource = skills.Neo4jSource{Driver: d}
	}

	var projection *geo.Projection
	if cfg.Data.GeoJSON != "" {
		p, err := loadProjection(cfg.Data.GeoJSON)
		if err != nil {
			return err
		}
		projection = p
		logger.Info("loaded map outline", zap.Int("cities", len(projection.CityPoints)))
	}

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return err
	}
	if c, ok := llmClient.(io.Closer); ok {
		defer c.Close()
	}

	srv := &server.Server{
		Portfolio: store,
		Skills:    skillsSource,
		Chat:      assistant.New(llmClient, store, cfg.Chat, logger),
		Map:       projection,
		Metrics:   collector,
		Logger:    logger,
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           srv.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.String("skills_source", cfg.Skills.Source))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func loadProjection(path string) (*geo.Projection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geo.ParseFeatureCollection(data)
	if err != nil {
		return nil, err
	}
	return geo.NewProjector().Project(fc)
}
