package main

import (
	"log"
	"net/http"

	"github.com/hector17rock/SeatServe/internal/api"
	"github.com/hector17rock/SeatServe/internal/config"
	"github.com/hector17rock/SeatServe/internal/db"
	"github.com/hector17rock/SeatServe/internal/logger"
	"github.com/hector17rock/SeatServe/internal/menu"
	"github.com/hector17rock/SeatServe/internal/middleware"
	"github.com/hector17rock/SeatServe/internal/order"
	"github.com/hector17rock/SeatServe/internal/staff"
	"github.com/hector17rock/SeatServe/internal/table"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	tableRepo := table.NewRepository(database)
	tableSvc := table.NewService(tableRepo)

	menuRepo := menu.NewRepository(database)
	menuSvc := menu.NewService(menuRepo)

	calc := order.Calculator{
		TaxRate:           cfg.TaxRate,
		ServiceChargeRate: cfg.ServiceCharge,
	}
	orderRepo := order.NewRepository(database, calc)
	orderSvc := order.NewService(orderRepo, tableRepo, menuRepo, calc)

	staffRepo := staff.NewRepository(database)
	staffSvc := staff.NewService(staffRepo, cfg.JWTSecret)

	mux := api.NewRouter(
		api.NewOrderHandler(orderSvc),
		api.NewTableHandler(tableSvc),
		api.NewMenuHandler(menuSvc),
		api.NewStaffHandler(staffSvc),
	)

	var handler http.Handler = mux
	handler = middleware.RateLimitMiddleware(handler)
	handler = middleware.AuthMiddleware(cfg.JWTSecret)(handler)
	handler = logger.LoggingMiddleware(handler)
	handler = logger.RequestIDMiddleware(handler)

	log.Printf("SeatServe API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, handler))
}
