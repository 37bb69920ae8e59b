package main

import (
	"context"
	"os"

	"refurbstore/internal/config"
	"refurbstore/internal/domain/model"
	"refurbstore/internal/handler"
	"refurbstore/internal/infra/db"
	infraRepo "refurbstore/internal/infra/repository"
	"refurbstore/internal/server"
	"refurbstore/internal/session"
	"refurbstore/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional: the defaults run against the local sqlite store.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if cfg.GoEnv == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect")
	}

	if err := gormDB.AutoMigrate(
		&model.Laptop{},
		&model.SparePart{},
		&model.LaptopSparepart{},
		&model.LaptopImage{},
		&model.Order{},
		&model.OrderItem{},
		&model.User{},
	); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	laptopRepo := infraRepo.NewLaptopGormRepository(gormDB)
	partRepo := infraRepo.NewSparePartGormRepository(gormDB)
	linkRepo := infraRepo.NewPartLinkGormRepository(gormDB)
	imageRepo := infraRepo.NewImageGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	carts := session.NewStore()

	laptopUC := usecase.NewLaptopUsecase(txm, laptopRepo, linkRepo, imageRepo)
	partUC := usecase.NewSparePartUsecase(partRepo)
	imageUC := usecase.NewImageUsecase(txm, imageRepo, laptopRepo)
	cartUC := usecase.NewCartUsecase(carts, laptopRepo)
	orderUC := usecase.NewOrderUsecase(txm, carts)
	authUC := usecase.NewAuthUsecase(cfg, userRepo)

	if err := authUC.SeedAdmin(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}

	e := server.New(server.Deps{
		Cfg:        cfg,
		Carts:      carts,
		Auth:       handler.NewAuthHandler(authUC),
		Laptops:    handler.NewLaptopHandler(laptopUC),
		Parts:      handler.NewSparePartHandler(partUC),
		Images:     handler.NewImageHandler(imageUC),
		Orders:     handler.NewAdminOrderHandler(orderUC),
		Storefront: handler.NewStoreHandler(laptopUC, imageUC, cartUC, orderUC),
	})

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server")
	}
}
