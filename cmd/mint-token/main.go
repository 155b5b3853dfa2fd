package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/geotreasure/internal/auth"
	"github.com/osse101/geotreasure/internal/config"
)

// mint-token issues a bearer token for local testing and for the admin
// account. It reads JWT_SECRET and JWT_ISSUER the same way the server does.
func main() {
	owner := flag.String("owner", "", "Owner id to put in the token subject (required)")
	username := flag.String("username", "", "Display name claim")
	ttl := flag.Duration("ttl", auth.DefaultTokenTTL, "Token lifetime")
	flag.Parse()

	if *owner == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = config.DefaultJWTIssuer
	}

	tokens, err := auth.NewTokenService(secret, issuer, *ttl, nil)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	token, expires, err := tokens.Issue(*owner, *username)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "token for %s expires %s\n", *owner, expires.Format(time.RFC3339))
	fmt.Println(token)
}
