package shell

import "github.com/charmbracelet/lipgloss"

type styleID int

const (
	stDesktop styleID = iota
	stHeader
	stHeaderAccent
	stLauncher
	stLauncherIcon
	stBorder
	stBorderFocused
	stTitle
	stTitleFocused
	stBody
	stLogOK
	stLogWarn
	stLogErr
	stPrompt
	stTaskbar
	stTaskbarItem
	stTaskbarActive
	stTaskbarMinimized
	styleCount
)

// Theme holds one lipgloss style per canvas layer
type Theme struct {
	styles [styleCount]lipgloss.Style
}

// Palette
var (
	colorBackground = lipgloss.Color("#05070a")
	colorPanel      = lipgloss.Color("#0b1016")
	colorChrome     = lipgloss.Color("#101820")
	colorGreen      = lipgloss.Color("#39ff88")
	colorDimGreen   = lipgloss.Color("#1f8a4c")
	colorCyan       = lipgloss.Color("#3fd0ff")
	colorAmber      = lipgloss.Color("#ffb340")
	colorRed        = lipgloss.Color("#ff4d5e")
	colorMuted      = lipgloss.Color("#5b6b7a")
	colorText       = lipgloss.Color("#c8d3dc")
)

// DefaultTheme is the green-on-black operator theme
func DefaultTheme() Theme {
	base := lipgloss.NewStyle().Background(colorBackground)
	panel := lipgloss.NewStyle().Background(colorPanel)
	chrome := lipgloss.NewStyle().Background(colorChrome)

	var t Theme
	t.styles[stDesktop] = base.Foreground(colorMuted)
	t.styles[stHeader] = chrome.Foreground(colorText)
	t.styles[stHeaderAccent] = chrome.Foreground(colorGreen).Bold(true)
	t.styles[stLauncher] = base.Foreground(colorText)
	t.styles[stLauncherIcon] = base.Foreground(colorCyan).Bold(true)
	t.styles[stBorder] = panel.Foreground(colorMuted)
	t.styles[stBorderFocused] = panel.Foreground(colorGreen)
	t.styles[stTitle] = panel.Foreground(colorMuted)
	t.styles[stTitleFocused] = panel.Foreground(colorGreen).Bold(true)
	t.styles[stBody] = panel.Foreground(colorText)
	t.styles[stLogOK] = panel.Foreground(colorGreen)
	t.styles[stLogWarn] = panel.Foreground(colorAmber)
	t.styles[stLogErr] = panel.Foreground(colorRed)
	t.styles[stPrompt] = panel.Foreground(colorCyan)
	t.styles[stTaskbar] = chrome.Foreground(colorMuted)
	t.styles[stTaskbarItem] = chrome.Foreground(colorText)
	t.styles[stTaskbarActive] = chrome.Foreground(colorGreen).Bold(true)
	t.styles[stTaskbarMinimized] = chrome.Foreground(colorDimGreen)
	return t
}

// PlainTheme renders without colors
func PlainTheme() Theme {
	var t Theme
	for i := range t.styles {
		t.styles[i] = lipgloss.NewStyle()
	}
	return t
}

func (t Theme) style(id styleID) lipgloss.Style {
	return t.styles[id]
}
