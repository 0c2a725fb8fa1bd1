package app

import (
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/kk-code-lab/fm/internal/config"
	fsutil "github.com/kk-code-lab/fm/internal/fs"
	statepkg "github.com/kk-code-lab/fm/internal/state"
	inputui "github.com/kk-code-lab/fm/internal/ui/input"
	renderui "github.com/kk-code-lab/fm/internal/ui/render"
)

// Application represents the running app. It is the only owner of state;
// every mutation happens on the goroutine running Run.
type Application struct {
	screen     tcell.Screen
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	logger     *logrus.Logger
	watcher    *dirWatcher
	editorCmd  []string
	tick       time.Duration
	shouldQuit bool
}

// NewApplication initialises the terminal and loads the start directory.
func NewApplication(cfg config.Config, logger *logrus.Logger) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	app, err := newApplication(screen, cfg, logger)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return app, nil
}

func newApplication(screen tcell.Screen, cfg config.Config, logger *logrus.Logger) (*Application, error) {
	startDir := cfg.StartDir
	if startDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		startDir = cwd
	}

	snap, err := fsutil.Load(startDir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", startDir, err)
	}

	editorCmd, editorAvail := detectEditorCommand(cfg.Editor)

	state := statepkg.NewAppState(snap)
	state.ClipboardAvailable = !clipboard.Unsupported
	state.EditorAvailable = editorAvail
	state.ScreenWidth, state.ScreenHeight = screen.Size()

	tick := cfg.TickInterval
	if tick <= 0 {
		tick = config.DefaultTickInterval
	}

	actionCh := make(chan statepkg.Action, 10)
	reducer := statepkg.NewStateReducer()
	inputHandler := inputui.NewInputHandler(actionCh)
	inputHandler.SetState(state)

	app := &Application{
		screen:    screen,
		state:     state,
		reducer:   reducer,
		renderer:  renderui.NewRenderer(screen),
		input:     inputHandler,
		actionCh:  actionCh,
		logger:    logger,
		editorCmd: editorCmd,
		tick:      tick,
	}

	if cfg.Watch {
		watcher, err := newDirWatcher(screen, logger)
		if err != nil {
			logger.WithError(err).Warn("directory watching disabled")
		} else {
			app.watcher = watcher
			app.watchCurrent()
		}
	}

	reducer.RefreshPreview(state)
	logger.WithFields(logrus.Fields{
		"path":      snap.Cwd,
		"entries":   snap.Len(),
		"editor":    editorAvail,
		"clipboard": state.ClipboardAvailable,
	}).Info("started")
	return app, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	var err error
	if app.watcher != nil {
		err = app.watcher.Close()
	}
	app.screen.Fini()
	return err
}

// CurrentPath returns the directory being browsed.
func (app *Application) CurrentPath() string {
	return app.state.CurrentPath()
}

func (app *Application) watchCurrent() {
	if app.watcher == nil {
		return
	}
	path := app.state.CurrentPath()
	if err := app.watcher.Watch(path); err != nil {
		app.logger.WithFields(logrus.Fields{"path": path, "error": err}).Warn("cannot watch directory")
	}
}
