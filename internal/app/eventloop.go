package app

import (
	"errors"

	"github.com/dshills/hexstorm/internal/engine/caret"
	"github.com/dshills/hexstorm/internal/engine/window"
	"github.com/dshills/hexstorm/internal/hexview"
	"github.com/dshills/hexstorm/internal/renderer/backend"
	"github.com/dshills/hexstorm/internal/watcher"
)

// handleBackendEvent processes a backend event and routes it appropriately.
// Returns ErrQuit if the application should exit.
func (app *Application) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.render()
		return nil
	case backend.EventKey:
		return app.handleKeyEvent(ev)
	case backend.EventMouse:
		return app.handleMouseEvent(ev)
	case backend.EventInterrupt:
		return app.handleInterrupt(ev)
	default:
		return nil
	}
}

// isQuitKey reports whether ev ends the session: q, Escape or Ctrl+C.
func isQuitKey(ev backend.Event) bool {
	switch ev.Key {
	case backend.KeyEscape, backend.KeyCtrlC:
		return true
	case backend.KeyRune:
		return ev.Rune == 'q' || ev.Rune == 'Q'
	}
	return false
}

func (app *Application) handleKeyEvent(ev backend.Event) error {
	if isQuitKey(ev) {
		return ErrQuit
	}
	if ev.Key == backend.KeyCtrlR {
		app.reload("manual")
		app.render()
		return nil
	}

	handled, err := app.editor.HandleKey(ev)
	if err != nil {
		app.logEditorError(err)
	}
	if handled {
		if hexview.ActionFor(ev) == caret.ActionCommit {
			app.logCommit()
		}
		app.render()
	}
	return nil
}

func (app *Application) handleMouseEvent(ev backend.Event) error {
	handled, err := app.editor.HandleMouse(ev)
	if err != nil {
		app.logEditorError(err)
	}
	if handled {
		app.render()
	}
	return nil
}

func (app *Application) handleInterrupt(ev backend.Event) error {
	switch p := ev.Payload.(type) {
	case quitRequest:
		return ErrQuit
	case watcher.Event:
		app.reload(p.Op.String())
		app.render()
	}
	return nil
}

// reload re-reads the source after it changed on disk.
func (app *Application) reload(reason string) {
	log := app.logger.WithComponent("app").WithField("reason", reason)
	if err := app.editor.Reload(); err != nil {
		log.Error("reload: %v", err)
		return
	}
	log.Info("reloaded, %d bytes", app.src.Len())
}

// logEditorError logs vetoed transitions at debug level and read failures
// at error level.
func (app *Application) logEditorError(err error) {
	log := app.logger.WithComponent("editor")
	var veto *caret.VetoError
	switch {
	case errors.As(err, &veto):
		log.Debug("vetoed: %v", veto)
	case errors.Is(err, window.ErrIO):
		log.Error("%v", err)
	default:
		log.Warn("%v", err)
	}
}

func (app *Application) logCommit() {
	tags := app.editor.Tags()
	if len(tags) == 0 {
		return
	}
	t := tags[len(tags)-1]
	app.logger.WithComponent("editor").WithField("tag", t.ID).Info("tagged [%d, %d]", t.Start(), t.End())
}

// render paints the editor and its overlay.
func (app *Application) render() {
	if app.compositor == nil {
		return
	}
	app.compositor.Render(app.editor.Layout(), app.editor.Overlay())
}
