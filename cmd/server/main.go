package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/flowsettle/ledgercore/cmd/routes"
	"github.com/flowsettle/ledgercore/pkg/config"
	"github.com/flowsettle/ledgercore/pkg/database"
	"github.com/flowsettle/ledgercore/pkg/events"
	"github.com/flowsettle/ledgercore/pkg/logger"
	"github.com/gorilla/mux"
)

func main() {
	cfg := config.LoadConfig()

	database.Connect(cfg.DBUrl)
	if err := database.Migrate(); err != nil {
		logger.Fatal("Could not migrate database", logger.Fields{"error": err.Error()})
	}

	redisClient := events.NewRedisClient(cfg)

	r := mux.NewRouter()
	handler, worker := routes.RegisterRoutes(r, cfg, redisClient)
	worker.Start()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("Server starting", logger.Fields{"port": port, "env": cfg.Env})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Could not listen", logger.Fields{"port": port, "error": err.Error()})
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	server.Shutdown(ctx)
	logger.Info("Server gracefully shut down")
}
