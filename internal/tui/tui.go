// Package tui is the interactive terminal editor: recent-items ribbons, a zoomable node
// canvas, a side panel for the selected node and modal dialogs for editing and playback.
package tui

import (
	"context"
	"time"

	"chatweaver/internal/interact"
	"chatweaver/internal/session"
	"chatweaver/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const closeTimeout = 5 * time.Second

type Options struct {
	Store   store.Store
	Backend string
	Prefs   store.Prefs
	Logger  *zap.Logger
}

func Run(ctx context.Context, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	bs, err := opts.Store.Open(opts.Backend)
	if err != nil {
		return err
	}

	applyColorProfilePreference()
	applyThemePreference(opts.Prefs.Theme)

	snap, info := store.Load(ctx, bs)
	if info.Err != nil {
		log.Warn("stored data unusable; starting from defaults", zap.Error(info.Err))
	}

	st := session.New()
	if ui, err := opts.Store.LoadUIState(); err == nil {
		restoreUIState(st, ui)
	}

	saver := store.NewAsyncSaver(store.AsyncSaverOpts{Store: bs, Logger: log})
	ctrl := interact.New(snap, st, interact.Options{Persister: saver, Logger: log})
	defer ctrl.Close()

	m := newAppModel(ctrl, opts.Store, opts.Prefs, log)
	if info.Err != nil {
		m.minibuffer = "Stored data could not be read; using defaults."
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	w, err := store.NewPrefsWatcher(opts.Prefs, log, func(pr store.Prefs) {
		p.Send(prefsChangedMsg{prefs: pr})
	})
	if err != nil {
		log.Warn("prefs watcher unavailable", zap.Error(err))
	} else {
		defer w.Close()
	}

	_, runErr := p.Run()

	if err := opts.Store.SaveUIState(captureUIState(ctrl.State())); err != nil {
		log.Warn("save ui state", zap.Error(err))
	}
	cctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := saver.Close(cctx); err != nil && runErr == nil {
		return err
	}
	return runErr
}
