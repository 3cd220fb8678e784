package main

import (
	"fmt"
	"time"

	"github.com/jengzang/slotting-backend-go/internal/middleware"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

// tokenCmd mints a bearer token with the configured secret
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a JWT for the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl := tokenTTL
		if ttl == 0 {
			ttl = cfg.TokenTTL
		}
		token, expires, err := middleware.IssueToken(cfg.JWTSecret, tokenSubject, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", expires.UTC().Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "Token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default: config token_ttl)")
}
