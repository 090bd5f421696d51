package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/evcraddock/gardet/internal/property"
	"github.com/evcraddock/gardet/internal/search"
	"github.com/evcraddock/gardet/internal/theme"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single property summary in text format.
func printPropertySummary(w io.Writer, p *property.Property) {
	fmt.Fprintf(w, "Property #%d\n", p.ID)
	fmt.Fprintf(w, "  Title:     %s\n", p.Title)
	fmt.Fprintf(w, "  Location:  %s\n", p.Location)
	fmt.Fprintf(w, "  Type:      %s\n", typeLabel(p.Type))
	fmt.Fprintf(w, "  Price:     %s\n", p.PriceLabel())
	if p.Bedrooms != nil {
		fmt.Fprintf(w, "  Bedrooms:  %d\n", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		fmt.Fprintf(w, "  Bathrooms: %g\n", *p.Bathrooms)
	}
	if p.AreaM2 != nil {
		fmt.Fprintf(w, "  Area:      %g m²\n", *p.AreaM2)
	}
	if p.ImageURL != "" {
		fmt.Fprintf(w, "  Image:     %s\n", p.ImageURL)
	}
	if p.Description != "" {
		fmt.Fprintf(w, "\n%s\n", p.Description)
	}
}

// printPropertyTable prints a list of properties as a formatted table.
func printPropertyTable(out io.Writer, props []*property.Property) error {
	if len(props) == 0 {
		fmt.Fprintln(out, "No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tTYPE\tPRICE\tBED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t--------\t----\t-----\t---"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		beds := "-"
		if p.Bedrooms != nil {
			beds = strconv.FormatInt(*p.Bedrooms, 10)
		}

		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, truncate(p.Title, 40), truncate(p.Location, 30), typeLabel(p.Type), p.PriceLabel(), beds); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d properties\n", len(props))
	return nil
}

// printPalette prints the derived palette as style variables.
func printPalette(w io.Writer, p theme.Palette) {
	for _, v := range p.Vars() {
		fmt.Fprintf(w, "--%-18s %s\n", v.Name+":", v.Value)
	}
}

// typeLabel is the display label for a property type.
func typeLabel(t search.PropertyType) string {
	if t == search.TypeAll || t == "" {
		return "Todas"
	}
	return string(t)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
