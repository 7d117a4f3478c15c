package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	mw "repo-stats-admin/internal/http/middleware"
	"repo-stats-admin/internal/lib/config"

	"github.com/golang-jwt/jwt/v5"
)

// makeToken signs an HS256 token carrying role and an expiry.
func makeToken(secret, role string, ttl time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	})
	return t.SignedString([]byte(secret))
}

func main() {
	envFile := flag.String("env-file", "", "path to the env file (default $ENV_FILE or .env.local)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if err := config.LoadEnvFile(config.EnvFilePath(*envFile)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	secret := os.Getenv("ADMIN_JWT_SECRET")
	if secret == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := makeToken(secret, mw.RoleAdmin, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("ADMIN_TOKEN=" + token)
}
