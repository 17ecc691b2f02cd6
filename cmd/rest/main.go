package main

import (
	"context"
	"log"

	"postboard-be/internal/bootstrap"
	"postboard-be/internal/config"
	"postboard-be/internal/server"
	"postboard-be/internal/tracer"
	"postboard-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Workers
	go func() {
		log.Println("Background: Starting Purge Service...")
		if err := container.PurgeService.Consume(context.Background()); err != nil {
			log.Printf("Background Purge Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
