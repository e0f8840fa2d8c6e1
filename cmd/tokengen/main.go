// Command tokengen mints an HS256 bearer token for the API using the
// configured secret. Intended for local testing and scripting.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"billscan/internal/config"
)

func main() {
	sub := flag.String("sub", "local", "token subject")
	ttl := flag.Duration("ttl", 0, "token lifetime (default: configured auth expiry)")
	flag.Parse()

	if err := run(*sub, *ttl); err != nil {
		log.Fatalf("tokengen: %v", err)
	}
}

func run(sub string, ttl time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Auth.Secret == "" {
		return fmt.Errorf("BILLSCAN_AUTH_SECRET is not set")
	}
	if ttl <= 0 {
		ttl = cfg.Auth.Expiry
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sub,
		Issuer:    cfg.Auth.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Auth.Secret))
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, signed)
	return nil
}
