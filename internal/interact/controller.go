// Package interact turns front-end events (pointer, keyboard, wheel and explicit
// commands) into mutations and selection changes.
//
// A Controller owns the current snapshot. Every successful mutation replaces it whole,
// reconciles the selection and hands the new snapshot to the Persister. Failures never
// escape as panics: they are returned and also kept as a user-facing notice.
package interact

import (
	"errors"

	"chatweaver/internal/model"
	"chatweaver/internal/mutate"
	"chatweaver/internal/session"
	"chatweaver/internal/view"

	"go.uber.org/zap"
)

// Persister receives every new snapshot. Submit must not block on I/O.
type Persister interface {
	Submit(model.Snapshot)
}

var (
	ErrNoWorkspace = errors.New("no workspace selected")
	ErrNoChat      = errors.New("no chat selected")
)

type Options struct {
	Persister Persister

	// Confirmer decides destructive deletes synchronously. When nil, deletes wait as a
	// Pending request until Resolve is called.
	Confirmer Confirmer

	Logger *zap.Logger
}

type Controller struct {
	snap    model.Snapshot
	st      *session.State
	persist Persister
	confirm Confirmer
	log     *zap.Logger

	notice  string
	pending *Pending

	drag   *nodeDrag
	press  bool
	scopes map[*Scope]struct{}
	pan    *Scope
}

func New(snap model.Snapshot, st *session.State, opts Options) *Controller {
	if st == nil {
		st = session.New()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		snap:    snap,
		st:      st,
		persist: opts.Persister,
		confirm: opts.Confirmer,
		log:     log,
		scopes:  map[*Scope]struct{}{},
	}
	c.st.Reconcile(snap)
	return c
}

func (c *Controller) Snapshot() model.Snapshot { return c.snap }

func (c *Controller) State() *session.State { return c.st }

// Notice is the last user-facing message ("" when none).
func (c *Controller) Notice() string { return c.notice }

func (c *Controller) ClearNotice() { c.notice = "" }

// Canvas builds the current canvas, including any in-progress drag.
func (c *Controller) Canvas(opts view.Options) view.Canvas {
	opts.Drag = c.DragPreview()
	return view.BuildCanvas(c.snap, c.st, opts)
}

// apply installs the result of a mutation. On error the snapshot is left as is.
func (c *Controller) apply(op string, next model.Snapshot, err error) error {
	if err != nil {
		c.fail(op, err)
		return err
	}
	c.snap = next
	c.st.Reconcile(next)
	c.notice = ""
	if c.persist != nil {
		c.persist.Submit(next)
	}
	return nil
}

func (c *Controller) fail(op string, err error) {
	c.notice = err.Error()
	c.log.Debug("command rejected", zap.String("op", op), zap.Error(err))
}

func (c *Controller) current() (string, string, error) {
	ws, chat := c.st.Current(c.snap)
	if ws == nil {
		return "", "", ErrNoWorkspace
	}
	if chat == nil {
		return ws.ID, "", ErrNoChat
	}
	return ws.ID, chat.ID, nil
}

func (c *Controller) SelectWorkspace(id string) error {
	if _, ok := c.snap.Workspace(id); !ok {
		err := mutate.NotFoundError{Kind: "workspace", ID: id}
		c.fail("select-workspace", err)
		return err
	}
	c.st.SelectWorkspace(id)
	return nil
}

func (c *Controller) SelectChat(id string) error {
	ws, _ := c.st.Current(c.snap)
	if ws == nil {
		c.fail("select-chat", ErrNoWorkspace)
		return ErrNoWorkspace
	}
	if _, ok := ws.Chat(id); !ok {
		err := mutate.NotFoundError{Kind: "chat", ID: id}
		c.fail("select-chat", err)
		return err
	}
	c.st.SelectChat(id)
	return nil
}

// ClickNode completes a pending link or toggles selection. Ignored while panning.
func (c *Controller) ClickNode(id string) error {
	if c.Panning() {
		return nil
	}
	if c.st.Drawing() {
		out := c.st.ClickInLinkMode(id)
		if !out.Emit {
			return nil
		}
		wsID, chatID, err := c.current()
		if err != nil {
			c.fail("add-link", err)
			return err
		}
		next, err := mutate.AddLink(c.snap, wsID, chatID, out.From, out.To)
		return c.apply("add-link", next, err)
	}
	c.st.ToggleNode(id)
	return nil
}

// SelectNode selects a node of the current chat (keyboard navigation).
func (c *Controller) SelectNode(id string) error {
	_, chat := c.st.Current(c.snap)
	if chat == nil {
		c.fail("select-node", ErrNoChat)
		return ErrNoChat
	}
	if _, ok := chat.Node(id); !ok {
		err := mutate.NotFoundError{Kind: "node", ID: id}
		c.fail("select-node", err)
		return err
	}
	c.st.SelectNode(id)
	return nil
}

// ClickCanvas clears node selection and link drawing.
func (c *Controller) ClickCanvas() {
	if c.Panning() {
		return
	}
	c.st.Unselect()
}

func (c *Controller) StartLink(fromID string) error {
	_, chatID, err := c.current()
	if err != nil {
		c.fail("start-link", err)
		return err
	}
	ws, _ := c.st.Current(c.snap)
	chat, _ := ws.Chat(chatID)
	if _, ok := chat.Node(fromID); !ok {
		err := mutate.NotFoundError{Kind: "node", ID: fromID}
		c.fail("start-link", err)
		return err
	}
	c.st.StartLink(fromID)
	return nil
}

func (c *Controller) HoverDelete(targetID string) { c.st.SetHoverDelete(targetID) }

func (c *Controller) ClearHover() { c.st.ClearHoverDelete() }
