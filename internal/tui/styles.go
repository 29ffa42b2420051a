package tui

import "charm.land/lipgloss/v2"

// styles groups every lipgloss style the views use.
type styles struct {
	Header     lipgloss.Style
	HeaderSort lipgloss.Style
	Cell       lipgloss.Style
	GroupRow   lipgloss.Style
	Summary    lipgloss.Style
	Cursor     lipgloss.Style
	Range      lipgloss.Style
	Copied     lipgloss.Style
	RowPicked  lipgloss.Style
	Editor     lipgloss.Style
	StatusText lipgloss.Style
	StatusHint lipgloss.Style
	Border     lipgloss.Style
}

func themeStyles(theme string) styles {
	if theme == "light" {
		return styles{
			Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a1a1a")).Background(lipgloss.Color("#d0d0d0")),
			HeaderSort: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0050a0")).Background(lipgloss.Color("#d0d0d0")),
			Cell:       lipgloss.NewStyle().Foreground(lipgloss.Color("#1a1a1a")),
			GroupRow:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0050a0")),
			Summary:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#444444")),
			Cursor:     lipgloss.NewStyle().Reverse(true),
			Range:      lipgloss.NewStyle().Background(lipgloss.Color("#c4d9f2")),
			Copied:     lipgloss.NewStyle().Background(lipgloss.Color("#e8dfa8")),
			RowPicked:  lipgloss.NewStyle().Background(lipgloss.Color("#e0e8d0")),
			Editor:     lipgloss.NewStyle().Foreground(lipgloss.Color("#1a1a1a")).Background(lipgloss.Color("#ffffff")).Underline(true),
			StatusText: lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")),
			StatusHint: lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
			Border:     lipgloss.NewStyle().Foreground(lipgloss.Color("#bbbbbb")),
		}
	}
	return styles{
		Header:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0e0e0")).Background(lipgloss.Color("#2a2a2a")),
		HeaderSort: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AA00")).Background(lipgloss.Color("#2a2a2a")),
		Cell:       lipgloss.NewStyle().Foreground(lipgloss.Color("#c8c8c8")),
		GroupRow:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00AA00")),
		Summary:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#909090")),
		Cursor:     lipgloss.NewStyle().Reverse(true),
		Range:      lipgloss.NewStyle().Background(lipgloss.Color("#26384a")),
		Copied:     lipgloss.NewStyle().Background(lipgloss.Color("#3a3a1a")),
		RowPicked:  lipgloss.NewStyle().Background(lipgloss.Color("#223322")),
		Editor:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#1a1a40")).Underline(true),
		StatusText: lipgloss.NewStyle().Foreground(lipgloss.Color("#909090")),
		StatusHint: lipgloss.NewStyle().Foreground(lipgloss.Color("#5a5a5a")),
		Border:     lipgloss.NewStyle().Foreground(lipgloss.Color("#2a2a2a")),
	}
}
