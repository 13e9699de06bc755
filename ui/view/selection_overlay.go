package view

import (
	"fmt"
	"log/slog"

	"github.com/soocke/screen-recorder-go/config"
	"github.com/soocke/screen-recorder-go/domain/capture"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// SelectionOverlay is a translucent, resizable window the user drags over the
// area to record. Confirming stores its geometry as the capture region.
type SelectionOverlay interface {
	OpenOrFocus()
	Clear()
	Region() capture.Region
}

type selectionOverlay struct {
	logger   *slog.Logger
	cfg      *config.Config
	cfgPath  string
	onChange func(capture.Region)
	win      *ToplevelWidget
}

// NewSelectionOverlay creates a new overlay manager. onChange, when set, runs
// after the region is confirmed or cleared.
func NewSelectionOverlay(cfg *config.Config, cfgPath string, logger *slog.Logger, onChange func(capture.Region)) SelectionOverlay {
	return &selectionOverlay{logger: logger, cfg: cfg, cfgPath: cfgPath, onChange: onChange}
}

func (v *selectionOverlay) Region() capture.Region {
	if v.cfg == nil {
		return capture.Region{}
	}
	return v.cfg.Region()
}

func (v *selectionOverlay) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Select Region")
	v.win = win
	WmGeometry(win.Window, v.initialGeometry())
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-alpha", 0.4)
	WmAttributes(win.Window, "-transparentcolor", "#008080")
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	left := win.Frame(Width(4), Background("#dc2626"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#dc2626"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	full := win.Button(Txt("Full Screen"), Command(func() { v.Clear(); v.destroy() }))
	Grid(full, In(controls), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

// initialGeometry reopens over the stored region, or centres a window
// covering two thirds of the primary display.
func (v *selectionOverlay) initialGeometry() string {
	if r := v.Region(); !r.FullScreen() {
		return r.String()
	}
	screenW, screenH := 1920, 1080
	if b, err := capture.ScreenBounds(); err == nil && !b.Empty() {
		screenW, screenH = b.Dx(), b.Dy()
	} else if v.logger != nil {
		v.logger.Debug("screen bounds unavailable", "error", err)
	}
	w, h := max(screenW*2/3, 1), max(screenH*5/9, 1)
	return fmt.Sprintf("%dx%d+%d+%d", w, h, (screenW-w)/2, (screenH-h)/2)
}

func (v *selectionOverlay) Clear() { v.store(capture.Region{}) }

func (v *selectionOverlay) store(r capture.Region) {
	if v.cfg != nil {
		v.cfg.SetRegion(r)
		if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	}
	if v.logger != nil {
		v.logger.Info("capture region set", "region", r.String())
	}
	if v.onChange != nil {
		v.onChange(r)
	}
}

func (v *selectionOverlay) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	r, err := capture.ParseRegion(geom)
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("selection geometry rejected", "geometry", geom, "error", err)
		}
	} else {
		v.store(r)
	}
	v.destroy()
}

func (v *selectionOverlay) cancel() { v.destroy() }

func (v *selectionOverlay) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}
