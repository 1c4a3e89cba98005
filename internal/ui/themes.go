package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/acevedoonyx/onyx/internal/terminal"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	// Primary colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	// Semantic colors
	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor

	// UI colors
	Border     lipgloss.AdaptiveColor
	Background lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor

	// Log entry colors
	Command      lipgloss.AdaptiveColor
	Intelligence lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, accent, success, warning, errorColor, info, border, background, foreground, muted, command, intelligence [2]string) Theme {
	return Theme{
		Name:         name,
		Primary:      lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary:    lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Accent:       lipgloss.AdaptiveColor{Light: accent[0], Dark: accent[1]},
		Success:      lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:      lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:        lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Info:         lipgloss.AdaptiveColor{Light: info[0], Dark: info[1]},
		Border:       lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Background:   lipgloss.AdaptiveColor{Light: background[0], Dark: background[1]},
		Foreground:   lipgloss.AdaptiveColor{Light: foreground[0], Dark: foreground[1]},
		Muted:        lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Command:      lipgloss.AdaptiveColor{Light: command[0], Dark: command[1]},
		Intelligence: lipgloss.AdaptiveColor{Light: intelligence[0], Dark: intelligence[1]},
	}
}

// Available themes
var (
	OnyxTheme = buildTheme("onyx",
		[2]string{"#047857", "#10B981"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#1D4ED8", "#60A5FA"},
		[2]string{"#047857", "#34D399"}, [2]string{"#B45309", "#F59E0B"}, [2]string{"#B91C1C", "#F87171"},
		[2]string{"#0E7490", "#22D3EE"}, [2]string{"#D1D5DB", "#262626"}, [2]string{"#FFFFFF", "#0A0A0A"},
		[2]string{"#111827", "#F9FAFB"}, [2]string{"#6B7280", "#525252"},
		[2]string{"#1D4ED8", "#60A5FA"}, [2]string{"#7E22CE", "#C084FC"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#006600", "#00FF00"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"}, [2]string{"#CC0000", "#FF4444"},
		[2]string{"#0066CC", "#4499FF"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#FFFFFF", "#000000"},
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#000080", "#8080FF"}, [2]string{"#800080", "#FF80FF"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"}, [2]string{"#C53030", "#FC8181"},
		[2]string{"#2B6CB0", "#63B3ED"}, [2]string{"#E2E8F0", "#2D3748"}, [2]string{"#FFFFFF", "#1A202C"},
		[2]string{"#2D3748", "#F7FAFC"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#2B6CB0", "#63B3ED"}, [2]string{"#553C9A", "#B794F6"})
)

// ThemeByName looks up a theme
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "onyx":
		return OnyxTheme, true
	case "high-contrast":
		return HighContrastTheme, true
	case "minimal":
		return MinimalTheme, true
	default:
		return Theme{}, false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"onyx", "high-contrast", "minimal"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme
	Plain bool

	// Base styles
	Logo    lipgloss.Style
	Tagline lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style

	// Navigation
	NavItem   lipgloss.Style
	NavActive lipgloss.Style

	// Layout styles
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Copy       lipgloss.Style
	StatusBar  lipgloss.Style

	// Log entry styles
	Timestamp lipgloss.Style
	Entry     map[terminal.Category]lipgloss.Style

	// Input
	Prompt lipgloss.Style
	Status lipgloss.Style
}

// NewStyles builds the styles for theme. With plain set every style renders
// text unchanged apart from layout.
func NewStyles(theme Theme, plain bool) *Styles {
	color := func(s lipgloss.Style, c lipgloss.AdaptiveColor) lipgloss.Style {
		if plain {
			return s
		}
		return s.Foreground(c)
	}
	border := func(s lipgloss.Style) lipgloss.Style {
		if plain {
			return s
		}
		return s.BorderForeground(theme.Border)
	}

	return &Styles{
		Theme: theme,
		Plain: plain,

		Logo:    color(lipgloss.NewStyle(), theme.Primary),
		Tagline: color(lipgloss.NewStyle().Bold(true), theme.Secondary),
		Title:   color(lipgloss.NewStyle().Bold(true), theme.Primary),
		Body:    color(lipgloss.NewStyle(), theme.Foreground),
		Muted:   color(lipgloss.NewStyle(), theme.Muted),

		NavItem:   color(lipgloss.NewStyle().Padding(0, 1), theme.Secondary),
		NavActive: color(lipgloss.NewStyle().Padding(0, 1).Bold(true).Underline(true), theme.Primary),

		Panel: border(lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)),
		PanelTitle: color(lipgloss.NewStyle(), theme.Muted),
		Copy: border(lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 2)),
		StatusBar: color(lipgloss.NewStyle(), theme.Secondary),

		Timestamp: color(lipgloss.NewStyle(), theme.Muted),
		Entry: map[terminal.Category]lipgloss.Style{
			terminal.CategoryCommand: color(lipgloss.NewStyle(), theme.Command),
			terminal.CategorySystem:  color(lipgloss.NewStyle(), theme.Success),
			terminal.CategoryAI:      color(lipgloss.NewStyle(), theme.Intelligence),
			terminal.CategoryError:   color(lipgloss.NewStyle(), theme.Error),
		},

		Prompt: color(lipgloss.NewStyle().Bold(true), theme.Primary),
		Status: color(lipgloss.NewStyle().Bold(true), theme.Success),
	}
}

// Accent returns the highlight color used by a view's copy panel
func (s *Styles) Accent(v terminal.View) lipgloss.AdaptiveColor {
	switch v {
	case terminal.ViewWebDev:
		return s.Theme.Accent
	case terminal.ViewSecurity:
		return s.Theme.Error
	default:
		return s.Theme.Primary
	}
}
