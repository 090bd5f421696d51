package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/gardet/internal/client"
)

func newLogoutCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Revoke and remove the stored API key",
		Long:  "Revokes the API key on the server, then removes it from the config file. With --local the server is not contacted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogout(cmd.Context(), cmd.OutOrStdout(), local)
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "only remove the key from the config file")

	return cmd
}

func runLogout(ctx context.Context, out io.Writer, local bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.APIKey == "" {
		fmt.Fprintln(out, "Not logged in.")
		return nil
	}

	if !local {
		if ctx == nil {
			ctx = context.Background()
		}
		ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		// A key the server already rejects is as good as revoked.
		err := client.New(getServerURL(), cfg.APIKey).Logout(ctx)
		var apiErr *client.APIError
		if err != nil && !(errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized) {
			return fmt.Errorf("revoking API key (use --local to only forget it): %w", err)
		}
	}

	cfg.APIKey = ""
	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintln(out, "✓ Logged out. API key removed.")
	return nil
}
