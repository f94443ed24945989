package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/identity"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token for a user",
	Long: "Issue a bearer token for the HTTP API, signed with PREPCOACH_JWT_SECRET.\n" +
		"The user is created on first authenticated request.",
	Example: "  curl -H \"Authorization: Bearer $(prepcoach token --user alice)\" localhost:8080/api/v1/profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadBase()
		if err != nil {
			return err
		}
		defer log.Sync()

		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		tok, err := identity.NewTokenVerifier(cfg.JWTSecret, cfg.JWTTTL).Issue(localUser(cmd, cfg), name, email)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("name", "", "Display name stored on first use")
	tokenCmd.Flags().String("email", "", "Email stored on first use")
}
