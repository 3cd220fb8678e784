package main

import (
	"database/sql"
	"fmt"

	"github.com/jengzang/slotting-backend-go/internal/database"
	"github.com/jengzang/slotting-backend-go/internal/repository"
	"github.com/jengzang/slotting-backend-go/internal/service"
)

// services bundles the services the offline commands need
type services struct {
	db        *sql.DB
	analytics *service.AnalyticsService
	uploads   *service.UploadService
}

// openServices opens the configured database, migrates it and wires the
// services on top of it. Callers close the returned db.
func openServices() (*services, error) {
	conn, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		return nil, err
	}
	if err := database.NewMigrationManager(conn, logger).RunMigrations(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	layoutRepo := repository.NewLayoutRepository(conn)
	elementRepo := repository.NewElementRepository(conn)
	markerRepo := repository.NewRouteMarkerRepository(conn)
	pickRepo := repository.NewPickRepository(conn)
	laborRepo := repository.NewLaborRepository(conn)

	return &services{
		db: conn,
		analytics: service.NewAnalyticsService(
			layoutRepo, elementRepo, markerRepo, pickRepo, laborRepo,
			cfg.Analytics, nil, logger,
		),
		uploads: service.NewUploadService(layoutRepo, elementRepo, pickRepo, nil, logger),
	}, nil
}
