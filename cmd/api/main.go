package main

import (
	"clinicbook/cmd/internal/auth"
	"clinicbook/cmd/internal/config"
	"clinicbook/cmd/internal/domain/entity"
	"clinicbook/cmd/internal/domain/sqlite"
	"clinicbook/cmd/internal/domain/sqlite/repository"
	"clinicbook/cmd/internal/routes"
	"clinicbook/cmd/internal/seed"
	"clinicbook/cmd/internal/service"
	"clinicbook/cmd/internal/utils/validators"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatal("failed to load configuration", err)
	}

	// Init SQLite
	db, err := sqlite.Init(cfg.DatabasePath)
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, validate, tokens)
	slotService := service.NewSlotService(slotRepo)
	bookingService := service.NewBookingService(bookingRepo, slotRepo, validate)

	// Seed default accounts and the initial slot grid
	seed.NewSeeder(userRepo, slotRepo).Run(cfg)

	// Getting routes
	userRoutes := routes.NewUserDefault(userService)
	slotRoutes := routes.NewSlotDefault(slotService)
	bookingRoutes := routes.NewBookingDefault(bookingService)

	e := echo.New()
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.FrontendOrigin},
	}))

	authed := tokens.Middleware()

	// Users
	e.POST("/api/register", userRoutes.Register)
	e.POST("/api/login", userRoutes.Login)

	// Slots
	e.GET("/api/slots", slotRoutes.GetSlots)

	// Bookings
	e.POST("/api/book", bookingRoutes.CreateBooking, authed, auth.RequireRole(entity.RolePatient))
	e.GET("/api/my-bookings", bookingRoutes.GetMyBookings, authed, auth.RequireRole(entity.RolePatient))
	e.GET("/api/all-bookings", bookingRoutes.GetAllBookings, authed, auth.RequireRole(entity.RoleStaff))

	err = e.Start(":" + cfg.Port)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("hasupper", validators.HasUpper)
	_ = validate.RegisterValidation("haslower", validators.HasLower)
	_ = validate.RegisterValidation("hasdigit", validators.HasDigit)
	_ = validate.RegisterValidation("hasspecial", validators.HasSpecial)
}
