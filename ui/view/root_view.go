package view

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/soocke/screen-recorder-go/assets"
	"github.com/soocke/screen-recorder-go/config"
	"github.com/soocke/screen-recorder-go/domain/capture"
	"github.com/soocke/screen-recorder-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Session     SessionStats
	ConfigPanel ConfigPanel
	Selection   SelectionOverlay

	// Widgets
	StateLabel     *TLabelWidget
	StatusLabel    *TLabelWidget
	CountdownLabel *LabelWidget
	RegionLabel    *LabelWidget
	StartButton    *TButtonWidget
	PauseButton    *ButtonWidget
	StopButton     *TButtonWidget
	SelectButton   *ButtonWidget
}

// Handlers are invoked on user actions.
type Handlers struct {
	Start  func()
	Pause  func()
	Stop   func()
	Select func()
	Exit   func()
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: icon, timer, total, state label
	Grid(Label(Image(NewPhoto(Data(assets.RecordIconPNG)))), Row(0), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	rv.Session = NewSessionStats(nil, 0, 1)
	rv.StateLabel = TLabel(Txt("State: idle"), Style(theme.StyleIdleLabel))
	Grid(rv.StateLabel, Row(0), Column(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Row 1: buttons
	btnFrame := Frame()
	Grid(btnFrame, Row(1), Column(0), Columnspan(4), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.StartButton = TButton(Txt("Start"), Style(theme.StylePrimaryButton), Command(h.Start))
	Grid(rv.StartButton, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.PauseButton = Button(Txt("Pause"), Command(h.Pause))
	Grid(rv.PauseButton, In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.StopButton = TButton(Txt("Stop"), Style(theme.StyleDangerButton), Command(h.Stop))
	Grid(rv.StopButton, In(btnFrame), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.SelectButton = Button(Txt("Select Region"), Command(h.Select))
	Grid(rv.SelectButton, In(btnFrame), Row(0), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(h.Exit))
	Grid(exitBtn, In(btnFrame), Row(0), Column(4), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 2: countdown + region, row 3: status
	rv.CountdownLabel = Label(Txt(""), Width(4))
	Grid(rv.CountdownLabel, Row(2), Column(0), Sticky("w"), Padx("0.4m"))
	rv.RegionLabel = Label(Txt(""), Anchor("w"))
	Grid(rv.RegionLabel, Row(2), Column(1), Columnspan(3), Sticky("we"), Padx("0.4m"))
	rv.SetRegion(rv.cfg.Region())
	rv.StatusLabel = TLabel(Txt("Ready"), Style(theme.StyleStatusLabel), Anchor("w"))
	Grid(rv.StatusLabel, Row(3), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.3m"))

	// Config panel rows
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	rv.ConfigPanel.Build(4)

	rv.Selection = NewSelectionOverlay(rv.cfg, rv.cfgPath, rv.logger, rv.SetRegion)
}

// SetStateLabel updates the state label text and its colour.
func (rv *RootView) SetStateLabel(text string) {
	if rv == nil || rv.StateLabel == nil {
		return
	}
	state := strings.TrimPrefix(text, "State: ")
	rv.StateLabel.Configure(Txt(text), Style(theme.StateStyle(state)))
}

// SetPauseLabel sets the pause button caption.
func (rv *RootView) SetPauseLabel(text string) {
	if rv != nil && rv.PauseButton != nil {
		rv.PauseButton.Configure(Txt(text))
	}
}

// SetStatus shows the last outcome (saved path, error).
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetCountdown shows the remaining countdown seconds; 0 clears it.
func (rv *RootView) SetCountdown(remaining int) {
	if rv == nil || rv.CountdownLabel == nil {
		return
	}
	text := ""
	if remaining > 0 {
		text = fmt.Sprintf("%d", remaining)
	}
	rv.CountdownLabel.Configure(Txt(text))
}

// SetRegion shows the configured capture region.
func (rv *RootView) SetRegion(r capture.Region) {
	if rv != nil && rv.RegionLabel != nil {
		rv.RegionLabel.Configure(Txt("Region: " + r.String()))
	}
}

// SetConfigEditable toggles config panel and region selection editability.
func (rv *RootView) SetConfigEditable(enabled bool) {
	if rv == nil {
		return
	}
	if rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(enabled)
	}
	if rv.SelectButton != nil {
		state := "disabled"
		if enabled {
			state = "normal"
		}
		rv.SelectButton.Configure(State(state))
	}
}

// ConfigEditable redirects to SetConfigEditable to satisfy RecordingView.
func (rv *RootView) ConfigEditable(b bool) { rv.SetConfigEditable(b) }

// SetSession updates both session and total recorded durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}
