package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/nao1215/querydesk"
)

// Natural hues palette.
var (
	colorText        = lipgloss.Color("#4A442D")
	colorAccent      = lipgloss.Color("#8FBC8F")
	colorAccentDark  = lipgloss.Color("#556B2F")
	colorError       = lipgloss.Color("#A52A2A")
	colorSuccess     = lipgloss.Color("#228B22")
	colorWarning     = lipgloss.Color("#B8860B")
	colorButtonLabel = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccentDark)
	buttonStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).
			Foreground(colorButtonLabel).Background(colorAccent)
	statusErrorStyle   = lipgloss.NewStyle().Foreground(colorError)
	statusSuccessStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	frameStyle         = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).
				BorderForeground(colorText).Padding(0, 1)
	focusedFrameStyle = frameStyle.BorderForeground(colorAccentDark)
	frameTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	dimStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dialogStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 3)
)

func dialogBorderColor(level querydesk.NoticeLevel) lipgloss.Color {
	switch level {
	case querydesk.NoticeError:
		return colorError
	case querydesk.NoticeWarning:
		return colorWarning
	default:
		return colorSuccess
	}
}

func gridStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.Bold(true).Foreground(colorText).
		BorderStyle(lipgloss.NormalBorder()).BorderForeground(colorText).BorderBottom(true)
	s.Selected = s.Selected.Foreground(colorButtonLabel).Background(colorAccentDark)
	return s
}
