package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/gardet/internal/config"
	"github.com/evcraddock/gardet/internal/theme"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [color]",
		Short: "Print the palette derived from a theme color",
		Long:  "Print the brand color and its dark and light variants. Without an argument the configured GARDET_THEME_COLOR is used.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := config.FromEnv().ThemeColor
			if len(args) == 1 {
				base = args[0]
			}
			p := theme.Derive(base)

			out := cmd.OutOrStdout()
			if isJSON() {
				return printJSON(out, p)
			}
			printPalette(out, p)
			fmt.Fprintf(out, "\n%s\n", p.CSS())
			return nil
		},
	}
}
