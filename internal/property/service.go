package property

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/evcraddock/gardet/internal/search"
)

// Input is the data needed to create a listing.
type Input struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Location    string   `json:"location" validate:"required,max=200"`
	Type        string   `json:"type" validate:"required,oneof=Departamentos Casas Villas Estudios"`
	Price       *int64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Bedrooms    *int64   `json:"bedrooms,omitempty" validate:"omitempty,gte=0,lte=100"`
	Bathrooms   *float64 `json:"bathrooms,omitempty" validate:"omitempty,gte=0,lte=100"`
	AreaM2      *float64 `json:"area_m2,omitempty" validate:"omitempty,gt=0"`
	ImageURL    string   `json:"image_url,omitempty" validate:"omitempty,url"`
	Description string   `json:"description,omitempty" validate:"max=5000"`
}

// ValidationError reports which input fields failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid property: " + strings.Join(e.Fields, "; ")
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the input after trimming its text fields.
func (in *Input) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	in.Type = strings.TrimSpace(in.Type)
	in.ImageURL = strings.TrimSpace(in.ImageURL)

	err := inputValidator().Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating property: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return ve
}

// Service provides listing business logic on top of the repository.
type Service struct {
	repo *Repository
}

// NewService creates a property service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Add validates in and stores it as a new listing.
func (s *Service) Add(in Input) (*Property, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := &Property{
		Title:       in.Title,
		Location:    in.Location,
		Type:        search.PropertyType(in.Type),
		Price:       in.Price,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		AreaM2:      in.AreaM2,
		ImageURL:    in.ImageURL,
		Description: strings.TrimSpace(in.Description),
	}

	saved, err := s.repo.Insert(p)
	if err != nil {
		return nil, fmt.Errorf("saving property: %w", err)
	}
	return saved, nil
}

// Search returns the listings a search request points at.
func (s *Service) Search(req search.Request) ([]*Property, error) {
	return s.repo.List(ListOptions{Location: req.Location(), Type: req.Type()})
}

// FilterCount is a quick filter with the number of matching listings.
type FilterCount struct {
	Type  search.PropertyType `json:"type"`
	Count int                 `json:"count"`
}

// QuickFilterCounts returns each quick filter in display order with its
// listing count. Types with no listings report zero.
func (s *Service) QuickFilterCounts() ([]FilterCount, error) {
	counts, err := s.repo.CountByType()
	if err != nil {
		return nil, err
	}
	out := make([]FilterCount, 0, len(search.QuickFilters))
	for _, t := range search.QuickFilters {
		out = append(out, FilterCount{Type: t, Count: counts[t]})
	}
	return out, nil
}
