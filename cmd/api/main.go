package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/mailer"
	"app/internal/payment"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	//.envは無くてもよい（CIや本番は環境変数直指定）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.ProductVariant{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.WishlistItem{},
		&model.PasswordResetOTP{},
	); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	variantRepo := infraRepo.NewVariantGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	otpRepo := infraRepo.NewOTPGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部サービス
	gateway := payment.NewRazorpayClient(cfg, logger)

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg)
	} else {
		logger.Warn("smtp not configured, otp codes are logged instead of mailed")
		mail = mailer.NewLogMailer(logger)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, otpRepo, mail, validator.NewAuthValidator(), cfg.JWTSecret)
	catalogUC := usecase.NewCatalogUsecase(categoryRepo, productRepo, variantRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo, variantRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo, gateway, cfg.RazorpayKeySecret)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo, variantRepo)

	//Handler生成とルーティング
	e := server.New(cfg, server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Catalog:  handler.NewCatalogHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		Wishlist: handler.NewWishlistHandler(wishlistUC),
	})

	addr := ":" + cfg.Port
	logger.Info("server starting", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
