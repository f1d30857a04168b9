package main

import (
	"context"
	"log"
	"time"

	"github.com/sansitamalhotra/ChatBot-sub003/internal/bootstrap"
	"github.com/sansitamalhotra/ChatBot-sub003/internal/config"
	"github.com/sansitamalhotra/ChatBot-sub003/pkg/database"
)

// Closes sessions that sat idle past the configured timeout. Meant to run
// from cron or a Kubernetes CronJob.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	closed, err := container.SessionService.CloseExpired(ctx)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	log.Printf("Sweep finished: closed %d idle session(s)", closed)
}
