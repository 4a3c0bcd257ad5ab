package main

import (
	"log"

	"github.com/archinet-app/backend/internal/router"
	"github.com/archinet-app/backend/pkg/config"
	"github.com/archinet-app/backend/validators"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db, err := config.InitDB(cfg.PostgresURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer config.CloseDB(db)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	if err := router.SetupRoutes(e, db, cfg); err != nil {
		log.Fatalf("failed to set up routes: %v", err)
	}

	log.Printf("starting server on port %s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
