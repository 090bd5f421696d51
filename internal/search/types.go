// Package search turns landing-page input into a navigation request for
// the property listing.
package search

import (
	"net/url"
	"strings"
)

// PropertyType is the listing filter selected on the landing page.
type PropertyType string

const (
	TypeAll        PropertyType = "All"
	TypeApartments PropertyType = "Departamentos"
	TypeHouses     PropertyType = "Casas"
	TypeVillas     PropertyType = "Villas"
	TypeStudios    PropertyType = "Estudios"
)

// QuickFilters are the selectable types in display order. TypeAll is the
// implicit default and has no button of its own.
var QuickFilters = []PropertyType{TypeApartments, TypeHouses, TypeVillas, TypeStudios}

// ParsePropertyType maps a string to a known type. Unknown or empty input
// yields TypeAll and false.
func ParsePropertyType(s string) (PropertyType, bool) {
	t := PropertyType(strings.TrimSpace(s))
	if t == TypeAll {
		return TypeAll, true
	}
	for _, f := range QuickFilters {
		if f == t {
			return t, true
		}
	}
	return TypeAll, false
}

// Query is the search widget's input.
type Query struct {
	Text         string       `json:"text"`
	PropertyType PropertyType `json:"property_type"`
}

// ListingPath is the route that receives search requests.
const ListingPath = "/properties"

// Param is one query parameter. Value is already in wire form.
type Param struct {
	Key   string
	Value string
}

// Request is a navigation request handed to a Navigator.
type Request struct {
	Path   string
	Params []Param
}

// String renders the request as a path with query string, e.g.
// "/properties?location=Madrid&type=Villas".
func (r Request) String() string {
	if len(r.Params) == 0 {
		return r.Path
	}
	var sb strings.Builder
	sb.WriteString(r.Path)
	for i, p := range r.Params {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(p.Key)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

// Values decodes the params back into url.Values.
func (r Request) Values() (url.Values, error) {
	u, err := url.Parse(r.String())
	if err != nil {
		return nil, err
	}
	return u.Query(), nil
}

// Location returns the decoded location param.
func (r Request) Location() string {
	v, err := r.Values()
	if err != nil {
		return ""
	}
	return v.Get("location")
}

// Type returns the property type param.
func (r Request) Type() PropertyType {
	v, err := r.Values()
	if err != nil {
		return TypeAll
	}
	t, _ := ParsePropertyType(v.Get("type"))
	return t
}

// componentUnescaper restores the characters a URI component leaves
// unescaped but url.QueryEscape encodes.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeComponent escapes s the way a URI component is escaped: spaces
// become %20 rather than +, and !'()* stay literal.
func EncodeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// Navigator issues route changes. It is the boundary to whatever routing
// mechanism hosts the search widget.
type Navigator interface {
	Navigate(req Request)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(req Request)

// Navigate calls f(req).
func (f NavigatorFunc) Navigate(req Request) { f(req) }
