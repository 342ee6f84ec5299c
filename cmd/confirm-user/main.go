package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/cafein/api-go/config"
	"github.com/cafein/api-go/models"
)

// confirm-user marks an account's email as verified without going through
// the mail flow. Operator tool for support cases.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	email := flag.String("email", "", "email of the account to confirm")
	flag.Parse()

	if *email == "" {
		return fmt.Errorf("usage: confirm-user -email <address>")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db := config.InitDB()

	var user models.User
	if err := db.Where("email = ?", *email).First(&user).Error; err != nil {
		return fmt.Errorf("find user %s: %w", *email, err)
	}

	if user.EmailVerified {
		logger.Info("email already verified", "email", user.Email, "id", user.ID)
		return nil
	}

	if err := db.Model(&user).Update("email_verified", true).Error; err != nil {
		return fmt.Errorf("confirm user: %w", err)
	}

	logger.Info("email verified", "email", user.Email, "id", user.ID)
	return nil
}
