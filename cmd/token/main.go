// Command token issues an HS256 access token for local development.
//
//	token -u <user-id> [-ttl 720h] [-c config.json]
//
// The signing secret comes from the same configuration sources as the CLI
// (JSON file or MINDEASE_JWT_SECRET).
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/mindease/internal/auth"
	"github.com/dmitrijs2005/mindease/internal/config"
	"github.com/dmitrijs2005/mindease/internal/flagx"
)

func main() {
	if err := run(os.Args[1:], os.Getenv, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "token:", err)
		os.Exit(1)
	}
}

func run(args []string, getenv func(string) string, w io.Writer) error {
	cfg := config.LoadConfig(args, getenv)

	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	userID := fs.String("u", "", "user id to put in the token")
	ttl := fs.Duration("ttl", 30*24*time.Hour, "token lifetime")
	if err := fs.Parse(flagx.FilterArgs(args, []string{"-u", "-ttl"})); err != nil {
		return err
	}
	if *userID == "" {
		return fmt.Errorf("-u is required")
	}

	tok, err := auth.GenerateToken(*userID, []byte(cfg.JWTSecret), *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, tok)
	return err
}
