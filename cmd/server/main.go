package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/washplan/laundry-booking/internal/booking"
	"github.com/washplan/laundry-booking/internal/config"
	"github.com/washplan/laundry-booking/internal/database"
	"github.com/washplan/laundry-booking/internal/handler"
	appmw "github.com/washplan/laundry-booking/internal/middleware"
	"github.com/washplan/laundry-booking/internal/queue"
	"github.com/washplan/laundry-booking/internal/repository"
	"github.com/washplan/laundry-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional. A nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, cache and rate limiting disabled")
	}

	bookingRepo := repository.NewBookingRepo(db)
	userRepo := repository.NewUserRepo(db)
	typeRepo := repository.NewMachineTypeRepo(db)
	machineRepo := repository.NewMachineRepo(db)
	buildingRepo := repository.NewBuildingAddressRepo(db)
	locationRepo := repository.NewMachineLocationRepo(db)
	addressRepo := repository.NewUserAddressRepo(db)

	engine := booking.NewEngine(cfg.QuotaLimit)

	h := router.Handlers{
		Booking:         handler.NewBookingHandler(bookingRepo, engine),
		User:            handler.NewUserHandler(userRepo, cfg.BcryptCost),
		MachineType:     handler.NewMachineTypeHandler(typeRepo),
		Machine:         handler.NewMachineHandler(machineRepo, typeRepo),
		BuildingAddress: handler.NewBuildingAddressHandler(buildingRepo),
		MachineLocation: handler.NewMachineLocationHandler(locationRepo, machineRepo, buildingRepo),
		UserAddress:     handler.NewUserAddressHandler(addressRepo, userRepo, buildingRepo),
	}

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAPI(e, h,
		appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		appmw.NewRedisCache(config.LoadCacheConfig(), rdb),
	)

	// Background consumer for booking.created events. It reconnects on its
	// own, so a broker outage never takes the API down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
