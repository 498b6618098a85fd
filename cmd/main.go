package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/sam7695/secure-asset-management/config"
	"github.com/sam7695/secure-asset-management/db"
	authhandler "github.com/sam7695/secure-asset-management/internal/auth/handler"
	authrest "github.com/sam7695/secure-asset-management/internal/auth/repository/rest"
	authservice "github.com/sam7695/secure-asset-management/internal/auth/service"
	findomain "github.com/sam7695/secure-asset-management/internal/financial/domain"
	finhandler "github.com/sam7695/secure-asset-management/internal/financial/handler"
	"github.com/sam7695/secure-asset-management/internal/financial/repository/memory"
	"github.com/sam7695/secure-asset-management/internal/financial/repository/postgres"
	finrest "github.com/sam7695/secure-asset-management/internal/financial/repository/rest"
	finservice "github.com/sam7695/secure-asset-management/internal/financial/service"
	"github.com/sam7695/secure-asset-management/internal/restapi"
)

func main() {
	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	api := restapi.NewClient(cfg.DataAPIURL)
	userStore := authrest.NewUserStore(api)
	recordStore := finrest.NewRecordStore(api)

	keyStore := newKeyStore(cfg)

	hashingService := authservice.NewHashingService(cfg.BcryptCost)
	tokenService := authservice.NewTokenService(cfg.TokenSecret, cfg.TokenExpiryMin)
	userService := authservice.NewUserService(userStore, hashingService, tokenService)

	encryptionService := finservice.NewEncryptionService(keyStore, cfg.RSAKeyBits)
	financialService := finservice.NewFinancialService(recordStore, encryptionService)

	app := fiber.New()
	authhandler.RegisterRoutes(app, authhandler.NewAuthHandler(userService), userService)
	finhandler.RegisterRoutes(app, finhandler.NewFinancialHandler(financialService), userService)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newKeyStore(cfg *config.Config) findomain.KeyStore {
	if cfg.KeyStoreDBURL == "" {
		slog.Warn("KEYSTORE_DB_URL not set, keypairs will not survive a restart")
		return memory.NewKeyStore()
	}

	pool, err := db.NewPostgresPool(context.Background(), cfg.KeyStoreDBURL)
	if err != nil {
		log.Fatalf("failed to connect to key store: %v", err)
	}

	return postgres.NewKeyStore(pool)
}
