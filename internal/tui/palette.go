package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive colours for light and dark terminals.
var (
	ColorInk       = lipgloss.AdaptiveColor{Light: "#2E3440", Dark: "#ECEFF4"}
	ColorDim       = lipgloss.AdaptiveColor{Light: "#8A919E", Dark: "#6C7486"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#B5563D", Dark: "#F0A07A"}
	ColorAccentAlt = lipgloss.AdaptiveColor{Light: "#3D7A8C", Dark: "#8CC4D4"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#4E7D3A", Dark: "#A7D08C"}
	ColorWarn      = lipgloss.AdaptiveColor{Light: "#A66A00", Dark: "#F2C46D"}
)
