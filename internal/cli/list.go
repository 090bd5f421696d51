package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/gardet/internal/search"
)

func newListCmd() *cobra.Command {
	var location, propertyType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List properties",
		Long:  "List properties from the server, optionally filtered by location and type (Departamentos, Casas, Villas, Estudios or All).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := search.TypeAll
			if propertyType != "" {
				var ok bool
				if t, ok = search.ParsePropertyType(propertyType); !ok {
					return fmt.Errorf("unknown property type: %s", propertyType)
				}
			}

			props, err := newAPIClient().ListProperties(location, t)
			if err != nil {
				return err
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), props)
			}
			return printPropertyTable(cmd.OutOrStdout(), props)
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "location substring to match")
	cmd.Flags().StringVar(&propertyType, "type", "", "property type")

	return cmd
}
