package search

// Suggestion is a popular location offered before the user types.
type Suggestion struct {
	Label string `json:"label"`
}

// SuggestionProvider supplies suggestions in display order.
type SuggestionProvider interface {
	Suggestions() []Suggestion
}

// StaticSuggestions is a fixed, ordered suggestion list.
type StaticSuggestions []Suggestion

// Suggestions returns a copy of the list.
func (s StaticSuggestions) Suggestions() []Suggestion {
	out := make([]Suggestion, len(s))
	copy(out, s)
	return out
}

// PopularLocations is the default suggestion list.
func PopularLocations() StaticSuggestions {
	return StaticSuggestions{
		{Label: "Buenos Aires"},
		{Label: "Ciudad de México"},
		{Label: "Madrid"},
		{Label: "Barcelona"},
		{Label: "Santiago"},
	}
}
