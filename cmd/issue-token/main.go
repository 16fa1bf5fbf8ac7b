package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/SergeyKozhin/events-assistant/internal/config"
	"github.com/SergeyKozhin/events-assistant/internal/model"
	"github.com/SergeyKozhin/events-assistant/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Mint and inspect tokens for the events HTTP API",
	Long: `issue-token signs API tokens with the SECRET of the events assistant.
A token carries the caller's id, display name and roles. Pass the events
admin role id to allow creating, cancelling and deleting events.`,
}

func main() {
	rootCmd.AddCommand(createCmd())
	rootCmd.AddCommand(verifyCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func manager(ttl time.Duration) (*jwt.Manager, error) {
	if config.Secret() == "" {
		return nil, fmt.Errorf("SECRET must be set")
	}

	return jwt.NewManager(config.Secret(), ttl), nil
}

func createCmd() *cobra.Command {
	var identity model.Identity
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a token",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager(ttl)
			if err != nil {
				return err
			}
			token, err := m.CreateToken(identity)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&identity.ID, "subject", "", "caller id, e.g. a Discord user id")
	cmd.Flags().StringVar(&identity.DisplayName, "name", "", "name shown on rosters")
	cmd.Flags().StringSliceVar(&identity.Roles, "role", nil, "role id, repeatable")
	cmd.Flags().DurationVar(&ttl, "ttl", config.JwtTTL(), "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Print the identity carried by a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manager(config.JwtTTL())
			if err != nil {
				return err
			}
			identity, err := m.ParseToken(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(identity)
		},
	}
}
