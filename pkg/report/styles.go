// Package report рендерит результаты движка для терминала: группы
// дубликатов, кандидатов подбора цвета и итог переименования.
package report

import "github.com/charmbracelet/lipgloss"

// Styles — цвета элементов отчёта. Каждое поле — lipgloss.Color
// (hex, ANSI или named color).
type Styles struct {
	Title   lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color
}

// DefaultStyles — схема по умолчанию.
var DefaultStyles = Styles{
	Title:   lipgloss.Color("86"),
	Muted:   lipgloss.Color("242"),
	Accent:  lipgloss.Color("226"),
	Warning: lipgloss.Color("196"),
}

func (s Styles) title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(s.Title)
}

func (s Styles) muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Muted)
}

func (s Styles) accent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(s.Accent)
}
