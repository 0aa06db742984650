// Command admintoken выпускает токен для административного HTTP API.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fsdevblog/castile-money/internal/logger"
	"github.com/fsdevblog/castile-money/internal/service/tokens"
	"github.com/joho/godotenv"
)

func main() {
	l := logger.New(os.Stderr)
	_ = godotenv.Load()

	adminID := flag.Int64("admin", 0, "Telegram user id of the admin, must be listed in ADMIN_IDS")
	expire := flag.Duration("ttl", 24*time.Hour, "Token lifetime") //nolint:mnd
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		l.Fatal("JWT_SECRET is not set")
	}
	if *adminID <= 0 {
		l.Fatal("-admin is required")
	}

	token, err := tokens.GenerateAdminJWT(*adminID, *expire, []byte(secret))
	if err != nil {
		l.WithError(err).Fatal("generate token")
	}
	fmt.Println(token) //nolint:forbidigo
}
