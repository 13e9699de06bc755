package view

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soocke/screen-recorder-go/config"
	"github.com/soocke/screen-recorder-go/domain/audio"
	"github.com/soocke/screen-recorder-go/domain/video"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ConfigPanel encapsulates the configuration form widgets and apply logic.
// It owns its widgets and writes back into *config.Config on ApplyChanges.
type ConfigPanel interface {
	Build(startRow int) (endRow int) // constructs widgets starting at startRow, returns next free row
	SetEditable(enabled bool)
	ApplyChanges() // parses widget text into underlying config and persists
}

type configPanel struct {
	cfg      *config.Config
	cfgPath  string
	logger   *slog.Logger
	applyBtn *ButtonWidget
	widgets  map[string]*TextWidget // keyed by config key
	choices  map[string]*choice
}

// choice is a read-only combobox over a fixed value list.
type choice struct {
	w      *TComboboxWidget
	values []string
}

// NewConfigPanel creates the view bound to cfg.
func NewConfigPanel(cfg *config.Config, cfgPath string, logger *slog.Logger) ConfigPanel {
	return &configPanel{
		cfg:     cfg,
		cfgPath: cfgPath,
		logger:  logger,
		widgets: make(map[string]*TextWidget),
		choices: make(map[string]*choice),
	}
}

func choiceValues(key string) []string {
	switch key {
	case "codec":
		out := make([]string, len(video.Codecs))
		for i, c := range video.Codecs {
			out[i] = string(c)
		}
		return out
	case "audio_source":
		modes := []audio.Mode{audio.ModeNone, audio.ModeMicrophone, audio.ModeSystem, audio.ModeBoth}
		out := make([]string, len(modes))
		for i, m := range modes {
			out[i] = m.String()
		}
		return out
	}
	return nil
}

func (v *configPanel) Build(startRow int) (row int) {
	row = startRow
	for _, f := range config.EditableFields {
		value, _ := v.cfg.Get(f.Key)
		lbl := Label(Txt(f.Label), Anchor("w"))
		Grid(lbl, Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		if values := choiceValues(f.Key); values != nil {
			cb := TCombobox(Values(values), Width(16), State("readonly"))
			Grid(cb, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
			cb.Current(indexOf(values, value))
			v.choices[f.Key] = &choice{w: cb, values: values}
		} else {
			w := Text(Height(1), Width(28))
			Grid(w, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
			w.Delete("1.0", END)
			w.Insert("1.0", value)
			v.widgets[f.Key] = w
		}
		row++
	}
	v.applyBtn = Button(Txt("Apply Changes"), Command(func() { v.ApplyChanges() }))
	Grid(v.applyBtn, Row(row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	row++
	return row
}

func indexOf(values []string, v string) int {
	for i, s := range values {
		if strings.EqualFold(s, v) {
			return i
		}
	}
	return 0
}

func (v *configPanel) SetEditable(enabled bool) {
	state, comboState := "disabled", "disabled"
	if enabled {
		state, comboState = "normal", "readonly"
	}
	for _, w := range v.widgets {
		if w != nil {
			w.Configure(State(state))
		}
	}
	for _, c := range v.choices {
		if c != nil && c.w != nil {
			c.w.Configure(State(comboState))
		}
	}
	if v.applyBtn != nil {
		v.applyBtn.Configure(State(state))
	}
}

func (v *configPanel) text(w *TextWidget) string {
	if w == nil {
		return ""
	}
	parts := w.Get("1.0", END)
	return strings.Join(parts, "")
}

func (c *choice) selected() (string, bool) {
	idx, err := strconv.Atoi(c.w.Current(nil))
	if err != nil || idx < 0 || idx >= len(c.values) {
		return "", false
	}
	return c.values[idx], true
}

func (v *configPanel) ApplyChanges() {
	if v.cfg == nil {
		return
	}
	cfg := *v.cfg // copy
	var errs []error
	for key, w := range v.widgets {
		if err := cfg.Set(key, v.text(w)); err != nil {
			errs = append(errs, err)
		}
	}
	for key, c := range v.choices {
		if val, ok := c.selected(); ok {
			errs = append(errs, cfg.Set(key, val))
		}
	}
	if err := errors.Join(errs...); err != nil {
		if v.logger != nil {
			v.logger.Warn("config fields ignored", "error", err)
		}
	}
	if verr := cfg.Validate(); verr != nil {
		return
	}
	*v.cfg = cfg
	if err := v.cfg.Save(v.cfgPath); err != nil {
		if v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
	} else {
		if v.logger != nil {
			v.logger.Info("config saved", "path", v.cfgPath)
		}
	}
}
