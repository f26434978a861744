// Command devtoken prints an access token for a user id, signed with the
// configured secret. It lets a local client call authenticated endpoints
// without an account service.
//
// Usage:
//
//	devtoken [--user=<uuid>] [--ttl=24h]
//
// Without --user a random id is generated and printed to stderr.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/heartmarshall/flashgen-backend/internal/auth"
	"github.com/heartmarshall/flashgen-backend/internal/config"
)

func main() {
	user := flag.String("user", "", "user UUID to issue the token for")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to auth.access_token_ttl)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadAuth()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	userID := uuid.New()
	if *user != "" {
		userID, err = uuid.Parse(*user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --user: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "user: %s\n", userID)
	}

	lifetime := cfg.AccessTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, lifetime).GenerateAccessToken(userID)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Println(token)
}
