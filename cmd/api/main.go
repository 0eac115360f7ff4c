package main

import (
	"time"

	"repairshop/internal/config"
	"repairshop/internal/domain/model"
	"repairshop/internal/handler"
	"repairshop/internal/infra/db"
	"repairshop/internal/infra/logger"
	infraRepo "repairshop/internal/infra/repository"
	"repairshop/internal/server"
	"repairshop/internal/usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	//.envは無くても動く（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Customer{},
		&model.StorageBox{},
		&model.Part{},
		&model.Accessory{},
		&model.RepairJob{},
		&model.RepairPartUsage{},
		&model.AccessorySale{},
		&model.Bill{},
		&model.BillItem{},
		&model.StockAdjustment{},
		&model.Setting{},
	); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	partRepo := infraRepo.NewPartGormRepository(gormDB)
	accessoryRepo := infraRepo.NewAccessoryGormRepository(gormDB)
	repairRepo := infraRepo.NewRepairJobGormRepository(gormDB)
	usageRepo := infraRepo.NewRepairPartGormRepository(gormDB)
	saleRepo := infraRepo.NewAccessorySaleGormRepository(gormDB)
	billRepo := infraRepo.NewBillGormRepository(gormDB)
	billItemRepo := infraRepo.NewBillItemGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	boxRepo := infraRepo.NewStorageBoxGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	settingRepo := infraRepo.NewSettingGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 8 * time.Hour,
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, issuer, 12)
	partUC := usecase.NewPartUsecase(partRepo, usageRepo, billItemRepo, boxRepo)
	accessoryUC := usecase.NewAccessoryUsecase(accessoryRepo, saleRepo, billItemRepo)
	inventoryUC := usecase.NewInventoryUsecase(txManager, partRepo, accessoryRepo)
	saleUC := usecase.NewSaleUsecase(txManager, saleRepo)
	repairUC := usecase.NewRepairUsecase(txManager, repairRepo, usageRepo, customerRepo)
	billUC := usecase.NewBillUsecase(txManager, billRepo, billItemRepo)
	customerUC := usecase.NewCustomerUsecase(customerRepo)
	boxUC := usecase.NewStorageBoxUsecase(boxRepo)
	settingUC := usecase.NewSettingUsecase(settingRepo)

	//Handler生成
	h := server.Handlers{
		Auth:       handler.NewAuthHandler(authUC),
		Part:       handler.NewPartHandler(partUC, inventoryUC),
		Accessory:  handler.NewAccessoryHandler(accessoryUC, inventoryUC),
		Sale:       handler.NewSaleHandler(saleUC),
		Repair:     handler.NewRepairHandler(repairUC),
		Bill:       handler.NewBillHandler(billUC),
		Customer:   handler.NewCustomerHandler(customerUC),
		StorageBox: handler.NewStorageBoxHandler(boxUC),
		Setting:    handler.NewSettingHandler(settingUC),
	}

	e := server.New(cfg, log, h)

	log.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.GoEnv))
	if err := server.Start(e, cfg); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
