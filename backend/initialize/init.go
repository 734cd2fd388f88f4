package initialize

import (
	"fmt"
	"net/http"

	"fruitlens/backend/app/classifier"
	"fruitlens/backend/app/controllers"
	"fruitlens/backend/app/db"
	jwtutil "fruitlens/backend/app/jwt"
	"fruitlens/backend/app/middleware"
	"fruitlens/backend/app/models"
	"fruitlens/backend/app/repo"
	"fruitlens/backend/app/services"
	"fruitlens/backend/config"
	"fruitlens/backend/global"
	"fruitlens/backend/router"

	"gorm.io/gorm"
)

type App struct {
	Cfg        *config.Config
	DB         *gorm.DB
	Router     http.Handler
	Auth       *controllers.AuthController
	ImageCtrl  *controllers.ImageController
	Admin      *controllers.AdminController
	Accounts   *services.AccountService
	Images     *services.ImageService
	Classifier *classifier.Service
}

// Build wires config, storage, services and the HTTP surface. Migration is
// idempotent; existing rows survive restarts.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = cfg
	if err := RedirectLog(cfg.LogPath); err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	gdb, err := db.Connect(db.Config{
		Driver: cfg.DB.Driver, Path: cfg.DB.Path,
		Host: cfg.DB.Host, Port: cfg.DB.Port,
		User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := gdb.AutoMigrate(&models.User{}, &models.ImageRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Services
	userRepo := repo.NewUserRepository(gdb)
	imageRepo := repo.NewImageRepository(gdb)
	accountSvc := services.NewAccountService(userRepo, cfg.AdminKey)
	imageSvc := services.NewImageService(imageRepo, cfg.StoragePath)

	var remote classifier.Classifier
	if cfg.Classifier.URL != "" {
		remote = classifier.NewHTTP(classifier.Config{URL: cfg.Classifier.URL, APIKey: cfg.Classifier.APIKey, Timeout: cfg.Classifier.Timeout})
	}
	clsSvc := classifier.NewService(remote)

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	authCtrl := controllers.NewAuthController(accountSvc, signer)
	imageCtrl := controllers.NewImageController(imageSvc, clsSvc)
	adminCtrl := controllers.NewAdminController(accountSvc, imageSvc)
	mw := &middleware.Auth{Signer: signer}

	h := router.NewRouter(authCtrl, imageCtrl, adminCtrl, mw)
	h = middleware.Logging(h)

	return &App{
		Cfg: cfg, DB: gdb, Router: h,
		Auth: authCtrl, ImageCtrl: imageCtrl, Admin: adminCtrl,
		Accounts: accountSvc, Images: imageSvc, Classifier: clsSvc,
	}, nil
}
