package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/gardet/internal/property"
)

func newAddCmd() *cobra.Command {
	var (
		in        property.Input
		price     int64
		bedrooms  int64
		bathrooms float64
		area      float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a property",
		Long:  "Create a listing on the server. Requires a stored API key.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("price") {
				in.Price = &price
			}
			if flags.Changed("bedrooms") {
				in.Bedrooms = &bedrooms
			}
			if flags.Changed("bathrooms") {
				in.Bathrooms = &bathrooms
			}
			if flags.Changed("area") {
				in.AreaM2 = &area
			}

			if err := in.Validate(); err != nil {
				return err
			}

			p, err := newAPIClient().AddProperty(in)
			if err != nil {
				return fmt.Errorf("adding property: %w", err)
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Property added successfully!")
			printPropertySummary(cmd.OutOrStdout(), p)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "listing title")
	f.StringVar(&in.Location, "location", "", "city or neighborhood")
	f.StringVar(&in.Type, "type", "", "Departamentos, Casas, Villas or Estudios")
	f.Int64Var(&price, "price", 0, "asking price")
	f.Int64Var(&bedrooms, "bedrooms", 0, "number of bedrooms")
	f.Float64Var(&bathrooms, "bathrooms", 0, "number of bathrooms")
	f.Float64Var(&area, "area", 0, "area in square meters")
	f.StringVar(&in.ImageURL, "image", "", "image URL")
	f.StringVar(&in.Description, "description", "", "free-text description")

	for _, name := range []string{"title", "location", "type"} {
		_ = cmd.MarkFlagRequired(name)
	}

	return cmd
}
