package main

import (
	"log/slog"
	"os"
	"time"

	"takeout/internal/config"
	"takeout/internal/domain/model"
	"takeout/internal/handler"
	"takeout/internal/infra/cache"
	"takeout/internal/infra/db"
	"takeout/internal/infra/mq"
	infraRepo "takeout/internal/infra/repository"
	"takeout/internal/infra/wechat"
	"takeout/internal/server"
	"takeout/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(subject int64, role string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
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
	//.envはローカル開発用。無ければ環境変数だけで動く
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Error("db connect failed", "error", err)
		os.Exit(1)
	}
	if err := gormDB.AutoMigrate(
		&model.Customer{},
		&model.Employee{},
		&model.AddressBook{},
		&model.Category{},
		&model.Dish{},
		&model.DishFlavor{},
		&model.Setmeal{},
		&model.SetmealDish{},
		&model.Order{},
		&model.OrderDetail{},
	); err != nil {
		log.Error("auto migrate failed", "error", err)
		os.Exit(1)
	}

	//カートと店舗状態のKVストア
	store := cache.NewRedisStore(cfg)
	defer store.Close()

	//未払い自動キャンセルの遅延キュー
	mqConn, err := mq.Connect(cfg.RabbitMQURL)
	if err != nil {
		log.Error("rabbitmq connect failed", "error", err)
		os.Exit(1)
	}
	defer mqConn.Close()

	scheduler, err := mq.NewCancelScheduler(mqConn)
	if err != nil {
		log.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}
	defer scheduler.Close()

	//Repository（GORM実装）生成
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderDetailRepo := infraRepo.NewOrderDetailGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	employeeRepo := infraRepo.NewEmployeeGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressBookGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	dishRepo := infraRepo.NewDishGormRepository(gormDB)
	setmealRepo := infraRepo.NewSetmealGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	clock := &realClock{}
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 2 * time.Hour,
	}
	wechatClient := wechat.NewClient(cfg)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(store, dishRepo, setmealRepo, clock)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, orderDetailRepo, customerRepo, store, scheduler, clock, log)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo, orderDetailRepo, clock)
	addressUC := usecase.NewAddressUsecase(txManager, addressRepo)
	shopUC := usecase.NewShopUsecase(store)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, dishRepo, setmealRepo)
	dishUC := usecase.NewDishUsecase(txManager, dishRepo, setmealRepo)
	setmealUC := usecase.NewSetmealUsecase(txManager, setmealRepo, dishRepo)
	employeeUC := usecase.NewEmployeeUsecase(employeeRepo, issuer, clock)
	customerUC := usecase.NewCustomerUsecase(customerRepo, wechatClient, issuer, clock)

	//Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(customerUC, employeeUC),
		Cart:       handler.NewCartHandler(cartUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
		Address:    handler.NewAddressHandler(addressUC),
		Shop:       handler.NewShopHandler(shopUC),
		Category:   handler.NewCategoryHandler(categoryUC),
		Dish:       handler.NewDishHandler(dishUC),
		Setmeal:    handler.NewSetmealHandler(setmealUC),
		Employee:   handler.NewEmployeeHandler(employeeUC),
	}

	//Server起動
	if err := server.Start(cfg, handlers); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
