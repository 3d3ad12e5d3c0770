// cmd/hashpass/main.go
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/your-org/tienda-backend/internal/config"
	"github.com/your-org/tienda-backend/internal/pkg/auth"
)

// Prints a bcrypt hash for seeding users by hand, using the configured cost.
func main() {
	if len(os.Args) < 2 {
		logrus.Fatal("Usage: go run ./cmd/hashpass <contrasena>")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	passwords := auth.NewPasswordManager(cfg)

	hash, err := passwords.HashPassword(os.Args[1])
	if err != nil {
		logrus.Fatalf("Error generating hash: %v", err)
	}
	if err := passwords.VerifyPassword(os.Args[1], hash); err != nil {
		logrus.Fatalf("Hash verification failed: %v", err)
	}

	fmt.Println(hash)
}
