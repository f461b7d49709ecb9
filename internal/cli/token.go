package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"agenda/internal/config"
	"agenda/internal/pkg/jwt"
)

// newTokenCmd issues a provider token signed with JWT_SECRET, for local
// testing without the identity provider.
func newTokenCmd() *cobra.Command {
	var providerID, name, picture string
	var ttl time.Duration
	c := &cobra.Command{
		Use:   "token",
		Short: "Issue a provider access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWTTTL
			}
			token, err := jwt.New(cfg.JWTSecret, ttl).GenerateToken(providerID, name, picture)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	c.Flags().StringVar(&providerID, "provider", "", "provider user id (token subject)")
	c.Flags().StringVar(&name, "name", "", "display name claim")
	c.Flags().StringVar(&picture, "picture", "", "picture URL claim")
	c.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (defaults to JWT_TTL)")
	_ = c.MarkFlagRequired("provider")
	return c
}
