package main

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/cache"
	"app/internal/infra/db"
	"app/internal/infra/mail"
	"app/internal/infra/rates"
	infraRepo "app/internal/infra/repository"
	"app/internal/logging"
	"app/internal/server"
	"app/internal/usecase"
)

// リセットコードの有効期限
const resetCodeTTL = 15 * time.Minute

// 為替レートキャッシュの有効期限
const rateCacheTTL = time.Hour

type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
}

func (i *jwtIssuer) Issue(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	//DB接続とマイグレーション
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	//Redis
	rdb, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("redis connect failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	favoriteRepo := infraRepo.NewFavoriteGormRepository(gormDB)
	giftCardRepo := infraRepo.NewGiftCardGormRepository(gormDB)
	paymentMethodRepo := infraRepo.NewPaymentMethodGormRepository(gormDB)
	blogRepo := infraRepo.NewBlogGormRepository(gormDB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(gormDB)

	//外部依存
	notifier := mail.NewNotifier(mail.NewSMTPMailer(cfg))
	resetCodes := cache.NewRedisResetCodeStore(rdb, resetCodeTTL)
	rateCache := cache.NewRedisRateCache(rdb, rateCacheTTL)
	rateSource := rates.NewClient(cfg.CurrencyAPIURL)
	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), ttl: 7 * 24 * time.Hour}

	//usecase生成
	productUC := usecase.NewProductUsecase(productRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, cartRepo, userRepo, notifier, log, usecase.OrderUsecaseConfig{
		ShippingFlatRate: cfg.ShippingFlatRate,
		TaxRate:          cfg.TaxRate,
		DefaultCurrency:  cfg.DefaultCurrency,
		AllowPartial:     cfg.OrderAllowPartial,
		AdminEmail:       cfg.AdminEmail,
	})
	authUC := usecase.NewAuthUsecase(userRepo, issuer, resetCodes, notifier, log)
	userUC := usecase.NewUserUsecase(userRepo, addressRepo, favoriteRepo, productRepo)
	giftCardUC := usecase.NewGiftCardUsecase(giftCardRepo, notifier, log)
	currencyUC := usecase.NewCurrencyUsecase(rateSource, rateCache, log, cfg.DefaultCurrency)
	paymentMethodUC := usecase.NewPaymentMethodUsecase(paymentMethodRepo)
	blogUC := usecase.NewBlogUsecase(blogRepo)
	appointmentUC := usecase.NewAppointmentUsecase(appointmentRepo, notifier, log, cfg.AdminEmail)

	//handler生成
	handlers := server.Handlers{
		Auth:          handler.NewAuthHandler(authUC),
		Product:       handler.NewProductHandler(productUC),
		Cart:          handler.NewCartHandler(cartUC),
		Order:         handler.NewOrderHandler(orderUC),
		User:          handler.NewUserHandler(userUC),
		GiftCard:      handler.NewGiftCardHandler(giftCardUC),
		Currency:      handler.NewCurrencyHandler(currencyUC),
		PaymentMethod: handler.NewPaymentMethodHandler(paymentMethodUC),
		Blog:          handler.NewBlogHandler(blogUC),
		Appointment:   handler.NewAppointmentHandler(appointmentUC),
		StoreInfo:     handler.NewStoreInfoHandler(cfg.ShippingFlatRate, cfg.DefaultCurrency),
	}

	e := server.New(cfg, log, handlers)
	log.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.GoEnv))
	if err := server.Start(e, cfg); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
