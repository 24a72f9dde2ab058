package main

import (
	"github.com/joho/godotenv"

	"shopapi/internal/config"
	"shopapi/internal/domain/model"
	"shopapi/internal/handler"
	"shopapi/internal/infra/db"
	infraRepo "shopapi/internal/infra/repository"
	"shopapi/internal/server"
	"shopapi/internal/usecase"
	"shopapi/internal/validator"
)

func main() {
	// .envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderProduct{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	linkRepo := infraRepo.NewOrderProductGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	userV := validator.NewUserValidator(userRepo)
	userUC := usecase.NewUserUsecase(txm, userRepo, orderRepo, userV)
	productUC := usecase.NewProductUsecase(txm, productRepo)
	orderUC := usecase.NewOrderUsecase(txm, orderRepo, productRepo, linkRepo)

	//Handler生成
	userH := handler.NewUserHandler(userUC)
	productH := handler.NewProductHandler(productUC)
	orderH := handler.NewOrderHandler(orderUC)

	//Server起動
	if err := server.Start(cfg.Addr(), userH, productH, orderH); err != nil {
		panic(err)
	}
}
