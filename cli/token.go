package cli

import (
	"fmt"
	"time"

	"github.com/Ranger10sam/Serenify-App/middleware"
	"github.com/spf13/cobra"
)

func newTokenCommand(a *app) *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the mutating API routes",
		Long: `Token signs an HS256 bearer token with SERENIFY_API_SECRET. Clients send
it as "Authorization: Bearer <token>" on POST, PATCH, PUT and DELETE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := middleware.NewAuthenticator(a.cfg.APISecret).IssueToken(subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "serenify-app", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", middleware.DefaultTokenTTL, "token lifetime")
	return cmd
}
