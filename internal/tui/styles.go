package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Application branding constants
const (
	AppName = "SCRPAIR — WIRELESS ADB PAIR & MIRROR"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 72  // Minimum supported terminal width
	MaxContentWidth  = 120 // Maximum content width before capping
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor   = lipgloss.Color("#FFFFFF") // White
	SubtleColor = lipgloss.Color("#626262") // Gray
	BorderColor = lipgloss.Color("#7D56F4") // Purple (same as primary)
)

// Common styles
var (
	// Title style - bold application banner
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(1, 0)

	// Subtitle style for hints and secondary text
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	// SectionStyle labels the pairing and connection form sections
	SectionStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	// LabelStyle is for input field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Width(12)

	// StatusReadyStyle renders a healthy bridge status
	StatusReadyStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	// StatusErrorStyle renders an unavailable bridge status
	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ErrorColor).
				Bold(true)

	// StatusPendingStyle renders an in-progress status
	StatusPendingStyle = lipgloss.NewStyle().
				Foreground(WarningColor)

	// QRBoxStyle frames the QR panel
	QRBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(1, 2)

	// LogBoxStyle frames the activity log
	LogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 1)

	// LogErrorStyle highlights failure lines in the activity log
	LogErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// LogOKStyle highlights success lines in the activity log
	LogOKStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)

	// HelpStyle is for the bottom help bar
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Padding(1, 0)
)
