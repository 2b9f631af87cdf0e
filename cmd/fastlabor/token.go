package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/fastlabor/internal/config"
	"github.com/jonathan/fastlabor/internal/server"
)

var tokenEmail string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an identity token for local development",
	Long:  "Signs a JWT carrying --email with JWT_SECRET, as the login service would. Send it as a Bearer token or the fastlabor_token cookie.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenEmail, "email", "e", "", "Email to put in the token (required)")
	if err := tokenCmd.MarkFlagRequired("email"); err != nil {
		panic(fmt.Sprintf("failed to mark email flag as required: %v", err))
	}
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}

	token, err := server.NewJWTService(jwtConfig).GenerateToken(tokenEmail)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
