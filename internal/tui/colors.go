package tui

// Color constants for the taskmate TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2"
	ColorSecondaryText = "#B1B8C7"
	ColorDisabledText  = "#6D7383"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Logo, accent elements, active borders
	ColorAccentBright = "#A78BFA" // Highlights, current field

	// Phase Colors
	ColorWork  = "#EF4444" // Work countdown
	ColorBreak = "#22C55E" // Break countdown

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)
