package search

import "strings"

// SuggestionState tracks whether the suggestion panel may be shown.
type SuggestionState int

const (
	// SuggestionsIdle means the input has not been focused yet.
	SuggestionsIdle SuggestionState = iota
	// SuggestionsFocused means the input was focused and the panel may show.
	SuggestionsFocused
	// SuggestionsDismissed means a selection or navigation closed the panel.
	SuggestionsDismissed
)

func (s SuggestionState) String() string {
	switch s {
	case SuggestionsFocused:
		return "focused"
	case SuggestionsDismissed:
		return "dismissed"
	default:
		return "idle"
	}
}

// Controller owns the search widget's state. It is driven from a single
// event loop and is not safe for concurrent use.
type Controller struct {
	text         string
	propertyType PropertyType
	suggestion   SuggestionState
	inputFocused bool

	suggestions SuggestionProvider
	nav         Navigator
}

// NewController creates a controller. A nil provider uses PopularLocations.
func NewController(nav Navigator, suggestions SuggestionProvider) *Controller {
	if suggestions == nil {
		suggestions = PopularLocations()
	}
	return &Controller{
		propertyType: TypeAll,
		suggestions:  suggestions,
		nav:          nav,
	}
}

// SetQueryText stores the raw input. Validation happens on submit.
func (c *Controller) SetQueryText(text string) {
	c.text = text
}

// SelectPropertyType sets the listing filter.
func (c *Controller) SelectPropertyType(t PropertyType) {
	c.propertyType = t
}

// FocusInput marks the input focused and allows the suggestion panel.
func (c *Controller) FocusInput() {
	c.inputFocused = true
	c.suggestion = SuggestionsFocused
}

// BlurInput clears the focused display flag. The suggestion panel is left
// alone: it stays until a selection or navigation dismisses it.
func (c *Controller) BlurInput() {
	c.inputFocused = false
}

// SelectSuggestion fills the input with label, hides the panel and submits.
func (c *Controller) SelectSuggestion(label string) (Request, bool) {
	c.text = label
	c.suggestion = SuggestionsDismissed
	return c.SubmitText(label)
}

// Submit submits the current query text.
func (c *Controller) Submit() (Request, bool) {
	return c.SubmitText(c.text)
}

// SubmitText submits text in place of the current query text. Blank text
// is ignored: nothing is navigated and false is returned.
func (c *Controller) SubmitText(text string) (Request, bool) {
	if strings.TrimSpace(text) == "" {
		return Request{}, false
	}

	req := Request{
		Path: ListingPath,
		Params: []Param{
			{Key: "location", Value: EncodeComponent(text)},
			{Key: "type", Value: string(c.propertyType)},
		},
	}

	c.suggestion = SuggestionsDismissed
	if c.nav != nil {
		c.nav.Navigate(req)
	}
	return req, true
}

// ShowSuggestions reports whether the suggestion panel is visible: the
// input was focused and the query text is exactly empty.
func (c *Controller) ShowSuggestions() bool {
	return c.suggestion == SuggestionsFocused && c.text == ""
}

// VisibleSuggestions returns the suggestions to render, or nil when the
// panel is hidden.
func (c *Controller) VisibleSuggestions() []Suggestion {
	if !c.ShowSuggestions() {
		return nil
	}
	return c.suggestions.Suggestions()
}

// Suggestions returns the full suggestion list regardless of visibility.
func (c *Controller) Suggestions() []Suggestion {
	return c.suggestions.Suggestions()
}

// InputFocused reports the focused display flag.
func (c *Controller) InputFocused() bool {
	return c.inputFocused
}

// SuggestionState returns the panel state.
func (c *Controller) SuggestionState() SuggestionState {
	return c.suggestion
}

// Query returns the current input.
func (c *Controller) Query() Query {
	return Query{Text: c.text, PropertyType: c.propertyType}
}
