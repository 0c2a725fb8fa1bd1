package app

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	fsutil "github.com/kk-code-lab/fm/internal/fs"
	statepkg "github.com/kk-code-lab/fm/internal/state"
)

// Run processes events until quit. Key presses, resizes, ticks, directory
// changes and resumes all arrive on one channel and are handled one at a
// time in arrival order.
func (app *Application) Run() {
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	stop := make(chan struct{})
	go app.screen.ChannelEvents(events, quit)
	go runTicker(app.screen, app.tick, stop)

	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh := make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
		go func() {
			for {
				select {
				case <-stop:
					return
				case <-sigContCh:
					if !postEvent(app.screen, newResumeEvent(), stop) {
						return
					}
				}
			}
		}()
	}

	defer func() {
		close(stop)
		close(quit)
	}()

	app.render()
	for !app.shouldQuit {
		ev, ok := <-events
		if !ok {
			return
		}
		changed := app.handleEvent(ev)
		if app.processActions() {
			changed = true
		}
		if changed && !app.shouldQuit {
			app.render()
		}
	}
}

func (app *Application) render() {
	app.renderer.Render(app.state.Projection())
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey, *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tickEvent:
		app.actionCh <- statepkg.TickAction{}
	case *dirChangedEvent:
		app.actionCh <- statepkg.DirectoryChangedAction{Path: ev.path}
	case *resumeEvent:
		return app.resumeAfterStop()
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.suspendToShell()
		app.resumeAfterStop()
		return true
	case statepkg.YankPathAction:
		return app.handleClipboard(action)
	case statepkg.OpenEditorAction:
		return app.handleEditorOpen(action)
	}

	return app.reduce(action)
}

// reduce applies action and logs what the state core reports.
func (app *Application) reduce(action statepkg.Action) bool {
	prevPath := app.state.CurrentPath()
	prevMode := app.state.Mode

	_, err := app.reducer.Reduce(app.state, action)
	if err != nil {
		app.logger.WithFields(logrus.Fields{
			"action": fmt.Sprintf("%T", action),
			"path":   prevPath,
			"kind":   fsutil.KindOf(err).String(),
		}).Debug(err.Error())
	}
	if app.state.Mode == statepkg.ModeErrorDisplay && prevMode != statepkg.ModeErrorDisplay {
		app.logger.WithFields(logrus.Fields{
			"action": fmt.Sprintf("%T", action),
			"path":   prevPath,
		}).Warn(app.state.ErrorMessage)
	}

	if path := app.state.CurrentPath(); path != prevPath {
		app.logger.WithField("path", path).Debug("changed directory")
		app.watchCurrent()
	}
	return true
}
