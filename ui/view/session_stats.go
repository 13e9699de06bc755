package view

import (
	"time"

	"github.com/soocke/screen-recorder-go/ui/model"
	"github.com/soocke/screen-recorder-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats updates the recording timer and the total recorded time.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
}

type sessionStats struct {
	timerLbl *TLabelWidget
	totalLbl *LabelWidget
}

// NewSessionStats places the timer at (row, startCol) and the running total
// at (row, startCol+1) inside parent, or the App root when parent is nil.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{
		timerLbl: TLabel(Txt(model.FormatClock(0)), Style(theme.StyleTimerLabel)),
		totalLbl: Label(Width(18)),
	}
	if parent != nil {
		Grid(s.timerLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.4m"))
		Grid(s.totalLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	} else {
		Grid(s.timerLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.4m"))
		Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	}
	s.SetTotal(0)
	return s
}

func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.timerLbl == nil {
		return
	}
	s.timerLbl.Configure(Txt(model.FormatClock(d)))
}

func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + model.FormatClock(d)))
}
