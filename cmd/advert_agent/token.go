package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/advert-generator/internal/config"
	"github.com/jonathan/advert-generator/internal/server"
)

type tokenOptions struct {
	clientID string
	name     string
}

func newTokenCmd(_ *app) *cobra.Command {
	opts := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for a client",
		Long:  "Token signs a JWT with JWT_SECRET that API clients send as 'Authorization: Bearer <token>'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runToken(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.clientID, "client-id", "", "Client UUID (default: a new random UUID)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Client name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		panic(fmt.Sprintf("failed to mark name flag as required: %v", err))
	}

	return cmd
}

func runToken(cmd *cobra.Command, opts *tokenOptions) error {
	jwtCfg, err := config.LoadJWTConfig()
	if err != nil {
		return err
	}
	if jwtCfg == nil {
		return errors.New("JWT_SECRET environment variable is required")
	}

	clientID := uuid.New()
	if opts.clientID != "" {
		clientID, err = uuid.Parse(opts.clientID)
		if err != nil {
			return fmt.Errorf("invalid client ID: %w", err)
		}
	}

	token, expiresAt, err := server.NewJWTService(jwtCfg).GenerateToken(clientID, opts.name)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Client:  %s (%s)\n", opts.name, clientID)
	_, _ = fmt.Fprintf(w, "Expires: %s\n", expiresAt.UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "Token:   %s\n", token)
	return nil
}
