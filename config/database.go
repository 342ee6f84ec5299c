package config

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cafein/api-go/models"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	Region          string
}

func GetR2Config() *R2Config {
	bucket := os.Getenv("CLOUDFLARE_BUCKET_NAME")
	if bucket == "" {
		bucket = "cafe-images"
	}
	return &R2Config{
		AccountID:       os.Getenv("CLOUDFLARE_ACCOUNT_ID"),
		AccessKeyID:     os.Getenv("CLOUDFLARE_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("CLOUDFLARE_SECRET_ACCESS_KEY"),
		BucketName:      bucket,
		PublicURL:       os.Getenv("CLOUDFLARE_PUBLIC_URL"),
		Region:          "auto",
	}
}

// databaseDSN prefers a full DATABASE_URL and falls back to the discrete
// DB_* variables.
func databaseDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"), os.Getenv("DB_PORT"))
}

func InitDB() *gorm.DB {
	db, err := gorm.Open(postgres.Open(databaseDSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto Migrate models
	db.AutoMigrate(&models.Role{}, &models.User{}, &models.RefreshToken{}, &models.Cafe{}, &models.OperatingHours{}, &models.CafeMenu{}, &models.Review{}, &models.CafeImage{})

	SeedRoles(db)

	return db
}

// SeedRoles ensures the three application roles exist.
func SeedRoles(db *gorm.DB) {
	for _, name := range []string{models.RoleAdmin, models.RoleStoreManager, models.RoleUser} {
		db.Where(models.Role{Name: name}).FirstOrCreate(&models.Role{Name: name})
	}
}
