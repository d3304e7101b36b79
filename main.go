package main

import (
	"log"

	"github.com/fusionorder/fusion-order-api/config"
	"github.com/fusionorder/fusion-order-api/models"
	"github.com/fusionorder/fusion-order-api/routers"
	"github.com/fusionorder/fusion-order-api/services"
)

func main() {
	log.Println("Starting FusionOrder API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.OrderForm{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if err := seedAdmin(cfg); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}

	if _, err := services.InitImageStorage(cfg); err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	router := routers.Setup(cfg, tokens)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// seedAdmin creates the configured admin account on first start so the
// protected endpoints are usable on a fresh database.
func seedAdmin(cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}

	db := config.GetDB()
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := services.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Username: cfg.AdminUsername,
		Password: hash,
		Role:     models.RoleAdmin,
		Enabled:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin account %q", cfg.AdminUsername)
	return nil
}
