// Package property provides the listing model and data access.
package property

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/evcraddock/gardet/internal/search"
)

// Property is a listing shown on the listing and detail pages.
type Property struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Location    string              `json:"location"`
	Type        search.PropertyType `json:"type"`
	Price       *int64              `json:"price,omitempty"`
	Bedrooms    *int64              `json:"bedrooms,omitempty"`
	Bathrooms   *float64            `json:"bathrooms,omitempty"`
	AreaM2      *float64            `json:"area_m2,omitempty"`
	ImageURL    string              `json:"image_url,omitempty"`
	Description string              `json:"description,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// PriceLabel formats the price in whole currency units, or "Consultar"
// when no price is listed.
func (p *Property) PriceLabel() string {
	if p.Price == nil {
		return "Consultar"
	}
	return "$" + groupThousands(*p.Price)
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// scanProperty scans a property from a database row.
func scanProperty(row interface{ Scan(...any) error }) (*Property, error) {
	var p Property
	var price, bedrooms sql.NullInt64
	var bathrooms, area sql.NullFloat64
	var propertyType string

	err := row.Scan(
		&p.ID, &p.Title, &p.Location, &propertyType,
		&price, &bedrooms, &bathrooms, &area,
		&p.ImageURL, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Type = search.PropertyType(propertyType)
	if price.Valid {
		p.Price = &price.Int64
	}
	if bedrooms.Valid {
		p.Bedrooms = &bedrooms.Int64
	}
	if bathrooms.Valid {
		p.Bathrooms = &bathrooms.Float64
	}
	if area.Valid {
		p.AreaM2 = &area.Float64
	}

	return &p, nil
}
