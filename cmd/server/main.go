package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JAGATH123/ai-student-partner/internal/api"
	"github.com/JAGATH123/ai-student-partner/internal/domain/questionbank"
	"github.com/JAGATH123/ai-student-partner/internal/infrastructure/config"
	"github.com/JAGATH123/ai-student-partner/internal/notify"
	"github.com/JAGATH123/ai-student-partner/internal/service"
	"github.com/JAGATH123/ai-student-partner/internal/store"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	bank, err := questionbank.Load(cfg.QuestionBankPath)
	if err != nil {
		logger.Error("failed to load question bank", "path", cfg.QuestionBankPath, "error", err)
		os.Exit(1)
	}

	db, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var sink notify.Sink = notify.Noop{}
	if cfg.RedisAddr != "" {
		redisSink := notify.NewRedisSink(cfg.RedisAddr)
		defer redisSink.Close()
		sink = redisSink
	}

	learningSvc := service.NewLearningService(db, bank, sink, logger)
	reviewSvc := service.NewReviewService(db, bank)
	handler := api.NewHandler(db, bank, learningSvc, reviewSvc, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "topics", len(bank.Topics()))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
