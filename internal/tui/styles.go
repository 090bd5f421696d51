package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/evcraddock/gardet/internal/theme"
)

var (
	mutedColor = lipgloss.Color("245")
	errorColor = lipgloss.Color("196")
)

// styles are derived from the site palette so the terminal matches the web
// theme.
type styles struct {
	brand      lipgloss.Style
	header     lipgloss.Style
	scrolled   lipgloss.Style
	link       lipgloss.Style
	activeLink lipgloss.Style
	badge      lipgloss.Style
	appName    lipgloss.Style
	filter     lipgloss.Style
	selected   lipgloss.Style
	input      lipgloss.Style
	focused    lipgloss.Style
	suggestion lipgloss.Style
	cursor     lipgloss.Style
	title      lipgloss.Style
	muted      lipgloss.Style
	err        lipgloss.Style
	menu       lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	base := lipgloss.Color(p.Base)
	dark := lipgloss.Color(p.Dark)
	light := lipgloss.Color(p.Light)

	return styles{
		brand: lipgloss.NewStyle().Bold(true).Foreground(base),
		header: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1).
			MarginBottom(1),
		scrolled: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(dark),
		link:       lipgloss.NewStyle().Foreground(mutedColor),
		activeLink: lipgloss.NewStyle().Bold(true).Underline(true).Foreground(dark),
		badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("231")).
			Background(base).
			Padding(0, 1),
		appName:  lipgloss.NewStyle().Foreground(mutedColor),
		filter:   lipgloss.NewStyle().Padding(0, 1).Foreground(mutedColor),
		selected: lipgloss.NewStyle().Padding(0, 1).Bold(true).Foreground(lipgloss.Color("231")).Background(base),
		input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1),
		focused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(base).
			Padding(0, 1),
		suggestion: lipgloss.NewStyle().PaddingLeft(2),
		cursor:     lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(dark).Background(light),
		title:      lipgloss.NewStyle().Bold(true).Foreground(dark).MarginBottom(1),
		muted:      lipgloss.NewStyle().Foreground(mutedColor),
		err:        lipgloss.NewStyle().Bold(true).Foreground(errorColor),
		menu: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(base).
			Padding(0, 1),
	}
}
