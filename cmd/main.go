package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"libcatalog/internal/config"
	"libcatalog/internal/handlers"
	"libcatalog/internal/models"
	"libcatalog/internal/repositories"
	"libcatalog/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get generic DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	detailsRepo := repositories.NewBookDetailsRepository(db)
	borrowRepo := repositories.NewBorrowedBookRepository(db)
	principalRepo := repositories.NewPrincipalRepository(db)

	catalogService := services.NewCatalogService(db, userRepo, bookRepo, detailsRepo, borrowRepo)
	authService := services.NewAuthService(principalRepo, cfg.TokenSecret, cfg.TokenTTL)

	router := gin.Default()

	handlers.RegisterRoutes(router, catalogService, authService)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Starting server on %s", cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
