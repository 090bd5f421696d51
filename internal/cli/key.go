package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/gardet/internal/auth"
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage issued API keys",
		Long:  "List and revoke the API keys issued through 'gardet login'. Works on the local database.",
	}

	cmd.AddCommand(newKeyListCmd(), newKeyRevokeCmd())
	return cmd
}

func newKeyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(database)

			keys, err := auth.NewAPIKeyStore(database).List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if isJSON() {
				if keys == nil {
					keys = []auth.APIKey{}
				}
				return printJSON(out, keys)
			}
			if len(keys) == 0 {
				fmt.Fprintln(out, "No API keys.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPREFIX\tEMAIL\tNAME\tLAST USED")
			for _, k := range keys {
				lastUsed := "never"
				if k.LastUsedAt != nil {
					lastUsed = k.LastUsedAt.Format(time.DateTime)
				}
				fmt.Fprintf(w, "%d\t%s…\t%s\t%s\t%s\n", k.ID, k.KeyPrefix, k.Email, k.Name, lastUsed)
			}
			return w.Flush()
		},
	}
}

func newKeyRevokeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke an API key by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid key ID: %s", args[0])
			}

			database, err := openDB()
			if err != nil {
				return err
			}
			defer closeDB(database)

			if err := auth.NewAPIKeyStore(database).Delete(id); err != nil {
				return fmt.Errorf("revoking key %d: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key #%d revoked.\n", id)
			return nil
		},
	}
}
