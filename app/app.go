package app

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/screen-recorder-go/ui/presenter"
	"github.com/soocke/screen-recorder-go/ui/theme"
	"github.com/soocke/screen-recorder-go/ui/view"
)

const (
	tick = 100 * time.Millisecond
	// exitTimeout bounds how long Exit waits for a running save.
	exitTimeout = 2 * time.Minute
)

type app struct {
	c       *AppContainer
	width   int
	height  int
	afterID string

	root      *view.RootView
	recording *presenter.RecordingPresenter
	loop      *presenter.Loop
}

func NewApp(title string, width, height int, c *AppContainer) *app {
	a := &app{c: c, width: width, height: height}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the window, wires presenters to the controller and runs the Tk
// event loop until the window closes.
func (a *app) Start() {
	theme.InitStyles()
	a.root = view.NewRootView(a.c.Config, a.c.ConfigPath, a.c.Logger)
	ctrl := a.c.Controller

	a.recording = presenter.NewRecordingPresenter(ctrl, a.c.Options, a.c.CountdownSeconds, a.root, a.c.Logger)
	a.root.Build(view.Handlers{
		Start:  a.recording.Start,
		Pause:  a.recording.TogglePause,
		Stop:   a.recording.Stop,
		Select: a.selectRegion,
		Exit:   a.exitHandler,
	})
	state := presenter.NewStatePresenter(ctrl, a.root)
	ctrl.AddListener(state.OnState)
	sess := presenter.NewSessionPresenter(a.c.Session, ctrl, a.root)
	a.loop = presenter.NewLoop(a.recording, state, sess, a.scheduleUpdate)

	if !a.c.CheckEncoder() {
		a.root.SetStatus("ffmpeg not found: only MJPG recordings without audio can be saved")
	}
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) selectRegion() {
	if a.recording.Busy() || a.c.Controller.State().Active() {
		return
	}
	a.root.Selection.OpenOrFocus()
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.loop.Tick() })
}

// exitHandler stops and saves a running session before closing the window.
func (a *app) exitHandler() {
	if a.recording != nil {
		a.recording.Stop()
		if !a.recording.WaitStopped(exitTimeout) && a.c.Logger != nil {
			a.c.Logger.Error("exit: recording still saving, giving up", "timeout", exitTimeout)
		}
	}
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	Destroy(App)
}
