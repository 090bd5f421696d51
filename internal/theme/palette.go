package theme

import "strings"

// Style variable names published to the presentation layer.
const (
	VarBrand      = "brand-color"
	VarBrandDark  = "brand-color-dark"
	VarBrandLight = "brand-color-light"
)

// Palette is the base brand color and its derived variants.
type Palette struct {
	Base  string `json:"base"`
	Dark  string `json:"dark"`
	Light string `json:"light"`
}

// Var is a single named style variable.
type Var struct {
	Name  string
	Value string
}

// Derive computes the palette for a base color. An empty base falls back
// to DefaultColor. Base is kept exactly as configured.
func Derive(base string) Palette {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultColor
	}
	return Palette{
		Base:  base,
		Dark:  Shift(base, DarkShift),
		Light: Shift(base, LightShift),
	}
}

// Vars returns the palette as style variables in a fixed order.
func (p Palette) Vars() []Var {
	return []Var{
		{Name: VarBrand, Value: p.Base},
		{Name: VarBrandDark, Value: p.Dark},
		{Name: VarBrandLight, Value: p.Light},
	}
}

// CSS renders the palette as custom properties on :root.
func (p Palette) CSS() string {
	var sb strings.Builder
	sb.WriteString(":root{")
	for _, v := range p.Vars() {
		sb.WriteString("--")
		sb.WriteString(v.Name)
		sb.WriteString(":")
		sb.WriteString(cssValue(v.Value))
		sb.WriteString(";")
	}
	sb.WriteString("}")
	return sb.String()
}

// cssValue drops characters that could terminate the declaration. The base
// color is configuration, but it still reaches a <style> element verbatim.
func cssValue(v string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '<', '>', '"', '\'', '\\':
			return -1
		}
		return r
	}, v)
}
