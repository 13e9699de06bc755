package theme

// Palette and ttk styles for the recorder control window. State styles
// colour the state label so recording and paused sessions stand out.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff"
	ColorPrimary   = "#2563eb" // start button
	ColorDanger    = "#dc2626" // stop button, recording state
	ColorWarn      = "#d97706" // paused state
	ColorIdle      = "#64748b"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Primary   string
	Danger    string
	Warn      string
	Idle      string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return PaletteSnapshot{
			AppBg:     "#0f172a",
			Surface:   "#1e293b",
			Primary:   "#3b82f6",
			Danger:    "#ef4444",
			Warn:      "#f59e0b",
			Idle:      "#475569",
			Text:      "#f1f5f9",
			TextMuted: "#94a3b8",
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Warn:      ColorWarn,
		Idle:      ColorIdle,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton  = "primary.TButton"
	StyleDangerButton   = "danger.TButton"
	StyleTimerLabel     = "timer.TLabel"
	StyleStatusLabel    = "status.TLabel"
	StyleIdleLabel      = "idle.TLabel"
	StyleRecordingLabel = "recording.TLabel"
	StylePausedLabel    = "paused.TLabel"
)

var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(CurrentPalette()) }

// SetDark toggles dark mode and reapplies styles. Returns new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	InitStyles()
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

// StateStyle maps a session state name to the label style used for it.
func StateStyle(state string) string {
	switch state {
	case "recording":
		return StyleRecordingLabel
	case "paused":
		return StylePausedLabel
	default:
		return StyleIdleLabel
	}
}

func applyStyles(p PaletteSnapshot) {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(p.AppBg))

	button := func(name, bg string) {
		StyleConfigure(name, Background(bg), Foreground("white"), Padding("4p 3p"), Borderwidth(1), Relief("ridge"))
	}
	button(StylePrimaryButton, p.Primary)
	button(StyleDangerButton, p.Danger)

	StyleConfigure(StyleTimerLabel, Foreground(p.Text), Background(p.Surface), Font("TkFixedFont", 16), Padding("4p 2p"))
	StyleConfigure(StyleStatusLabel, Foreground(p.TextMuted), Background(p.AppBg), Padding("2p 1p"))

	state := func(name, bg string) {
		StyleConfigure(name, Foreground("white"), Background(bg), Padding("4p 2p"), Borderwidth(1), Relief("groove"))
	}
	state(StyleIdleLabel, p.Idle)
	state(StyleRecordingLabel, p.Danger)
	state(StylePausedLabel, p.Warn)
}
