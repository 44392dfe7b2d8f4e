package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"chatweaver/internal/interact"
	"chatweaver/internal/logging"
	"chatweaver/internal/model"
	"chatweaver/internal/session"
	"chatweaver/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNeedsConfirm = errors.New(interact.DeletePrompt + " Re-run with --yes to confirm.")

// latest keeps the newest snapshot handed over by the controller; commands write it once
// at the end instead of going through the background saver.
type latest struct {
	snap  model.Snapshot
	dirty bool
}

func (l *latest) Submit(s model.Snapshot) {
	l.snap = s
	l.dirty = true
}

// editor is one command's view of the store: the loaded snapshot wrapped in a controller.
type editor struct {
	app   *App
	store store.Store
	bs    store.ByteStore
	log   *zap.Logger
	ctrl  *interact.Controller
	out   *latest
}

func openEditor(cmd *cobra.Command, app *App) (*editor, error) {
	s, err := storeFor(app)
	if err != nil {
		return nil, err
	}
	bs, err := s.Open(app.Backend)
	if err != nil {
		return nil, err
	}
	log := zap.NewNop()
	if _, err := logging.ParseLevel(app.LogLevel); err != nil {
		return nil, err
	}
	if fi, err := os.Stat(s.Dir); err == nil && fi.IsDir() {
		// Reads must not create the store dir just to hold a log file.
		log = logging.NewOrNop(s.Dir, app.LogLevel)
	}

	snap, info := store.Load(cmd.Context(), bs)
	if info.Err != nil {
		// Writing over unreadable data would destroy it, so refuse instead of
		// falling back to the default snapshot.
		return nil, fmt.Errorf("stored data unusable: %w", info.Err)
	}

	out := &latest{}
	ctrl := interact.New(snap, session.New(), interact.Options{
		Persister: out,
		Confirmer: interact.Always,
		Logger:    log,
	})
	return &editor{app: app, store: s, bs: bs, log: log, ctrl: ctrl, out: out}, nil
}

// commit persists the snapshot if any command changed it.
func (e *editor) commit(cmd *cobra.Command) error {
	defer func() { _ = e.log.Sync() }()
	if !e.out.dirty {
		return nil
	}
	if err := e.store.Ensure(); err != nil {
		return err
	}
	if err := store.Save(cmd.Context(), e.bs, e.out.snap); err != nil {
		return err
	}
	e.log.Info("snapshot saved", zap.String("cmd", cmd.CommandPath()), zap.Int("workspaces", len(e.out.snap)))
	return nil
}

// useWorkspace selects --workspace, or the only workspace when the flag is empty.
func (e *editor) useWorkspace() (*model.Workspace, error) {
	snap := e.ctrl.Snapshot()
	id := strings.TrimSpace(e.app.Workspace)
	if id == "" {
		if len(snap) != 1 {
			return nil, errors.New("missing --workspace")
		}
		id = snap[0].ID
	}
	if err := e.ctrl.SelectWorkspace(id); err != nil {
		return nil, err
	}
	ws, _ := e.ctrl.State().Current(snap)
	return ws, nil
}

// useChat selects --chat inside the workspace, or its only chat when the flag is empty.
func (e *editor) useChat() (*model.Workspace, *model.Chat, error) {
	ws, err := e.useWorkspace()
	if err != nil {
		return nil, nil, err
	}
	id := strings.TrimSpace(e.app.Chat)
	if id == "" {
		if len(ws.Chats) != 1 {
			return nil, nil, errors.New("missing --chat")
		}
		id = ws.Chats[0].ID
	}
	if err := e.ctrl.SelectChat(id); err != nil {
		return nil, nil, err
	}
	ws, chat := e.ctrl.State().Current(e.ctrl.Snapshot())
	return ws, chat, nil
}

// current re-reads the selected workspace and chat after a mutation.
func (e *editor) current() (*model.Workspace, *model.Chat) {
	return e.ctrl.State().Current(e.ctrl.Snapshot())
}

func (e *editor) requireYes() error {
	if !e.app.Yes {
		return errNeedsConfirm
	}
	return nil
}

// run wraps a command body: open, run, commit, then print {"data": ...}.
func run(app *App, body func(cmd *cobra.Command, e *editor, args []string) (any, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEditor(cmd, app)
		if err != nil {
			return writeErr(cmd, err)
		}
		data, err := body(cmd, e, args)
		if err != nil {
			return writeErr(cmd, err)
		}
		if err := e.commit(cmd); err != nil {
			return writeErr(cmd, err)
		}
		return writeOut(cmd, app, map[string]any{"data": data})
	}
}
