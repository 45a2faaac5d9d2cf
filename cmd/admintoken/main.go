// Command admintoken mints an admin JWT for the /admin endpoints.
//
//	AUTH_JWT_SECRET=... admintoken -sub ops@example.com -ttl 2h
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/5w1tchy/passkit/internal/config"
	jwtutil "github.com/5w1tchy/passkit/internal/security/jwt"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(stderr, "admintoken: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("admintoken", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sub := fs.String("sub", "", "operator identity (required)")
	ttl := fs.Duration("ttl", cfg.AdminTTL, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *sub == "" || *ttl <= 0 {
		fmt.Fprintln(stderr, "admintoken: -sub is required and -ttl must be positive")
		return 2
	}

	signer, err := jwtutil.NewSigner(cfg.JWTSecret, cfg.ClockSkew)
	if err != nil {
		fmt.Fprintf(stderr, "admintoken: %v\n", err)
		return 1
	}
	tok, jti, err := signer.SignAdmin(*sub, *ttl)
	if err != nil {
		fmt.Fprintf(stderr, "admintoken: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, tok)
	fmt.Fprintf(stderr, "jti=%s expires=%s\n", jti, time.Now().Add(*ttl).UTC().Format(time.RFC3339))
	return 0
}
