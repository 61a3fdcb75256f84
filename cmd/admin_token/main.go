// Command admin_token prints a bearer token for the /admin routes, signed with ADMIN_JWT_SECRET.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/miguelacho_api/internal/platform/config"
	"github.com/SscSPs/miguelacho_api/internal/utils"
)

func main() {
	subject := flag.String("subject", "", "who the token is issued to (required)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.AdminJWTSecret == "" {
		logger.Error("ADMIN_JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := utils.GenerateAdminToken(*subject, cfg.AdminJWTSecret, *ttl)
	if err != nil {
		logger.Error("Failed to generate token", slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(token)
}
