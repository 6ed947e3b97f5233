package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"raffle/internal/handlers"
	"raffle/internal/ledger"
	"raffle/internal/logger"
	"raffle/internal/raffle"
)

// MinReserveDefault is the platform balance floor left in a treasury on
// withdrawal when MIN_RESERVE is not configured.
const MinReserveDefault uint64 = 1_000_000

func main() {
	// Running without a .env file is fine; everything has a default.
	_ = godotenv.Load()

	logger.Initialize(logger.FromEnv())

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "raffle.db"
	}

	reserve := MinReserveDefault
	if value := os.Getenv("MIN_RESERVE"); value != "" {
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			logger.Fatal("invalid MIN_RESERVE", zap.String("value", value), zap.Error(err))
		}
		reserve = parsed
	}

	listenAddr := os.Getenv("HTTP_LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	host := ledger.NewSqliteLedger(dbPath, reserve)
	service := raffle.NewService(host, ledger.SystemClock{}, ledger.SystemEntropy{}, raffle.LogNotifier{})

	router := gin.Default()
	handlers.NewHTTPHandler(service).RegisterRoutes(router)

	server := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	go func() {
		logger.Info("listening", zap.String("addr", listenAddr), zap.String("db", dbPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-waitForInterrupt()
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func waitForInterrupt() <-chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	return sigCh
}
