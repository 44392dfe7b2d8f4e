package interact

import (
	"errors"
	"fmt"

	"chatweaver/internal/model"
	"chatweaver/internal/mutate"
)

// DeletePrompt is the question asked before any destructive delete.
const DeletePrompt = "Are you sure you want to delete this item?"

// Confirmer answers a delete confirmation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Always confirms every delete (e.g. `--yes`).
var Always = ConfirmFunc(func(string) bool { return true })

// ErrDeletePending rejects a delete while another one is still awaiting its answer.
var ErrDeletePending = errors.New("another delete is awaiting confirmation")

// Pending is a delete waiting for the user's answer.
type Pending struct {
	Kind   string
	ID     string
	Prompt string

	run func() (model.Snapshot, error)
}

// Pending returns the delete awaiting confirmation, if any.
func (c *Controller) Pending() *Pending { return c.pending }

// Resolve answers the pending delete. Declining is a no-op.
func (c *Controller) Resolve(confirmed bool) error {
	p := c.pending
	c.pending = nil
	if p == nil || !confirmed {
		return nil
	}
	next, err := p.run()
	return c.apply("delete-"+p.Kind, next, err)
}

// gate runs a delete once it is confirmed. With a synchronous Confirmer the answer is
// immediate; otherwise the delete is parked until Resolve. Only one delete is parked at
// a time: the first request keeps its place and later ones are refused.
func (c *Controller) gate(kind, id string, run func() (model.Snapshot, error)) error {
	if c.confirm == nil && c.pending != nil {
		c.fail("delete-"+kind, ErrDeletePending)
		return ErrDeletePending
	}
	c.pending = &Pending{Kind: kind, ID: id, Prompt: DeletePrompt, run: run}
	if c.confirm == nil {
		return nil
	}
	return c.Resolve(c.confirm.Confirm(DeletePrompt))
}

// DeleteNode deletes a node of the selected chat after confirmation. Deleting the only
// node is refused before anything is asked.
func (c *Controller) DeleteNode(id string) error {
	wsID, chatID, err := c.current()
	if err != nil {
		c.fail("delete-node", err)
		return err
	}
	ws, _ := c.snap.Workspace(wsID)
	chat, _ := ws.Chat(chatID)
	if _, ok := chat.Node(id); !ok {
		err := mutate.NotFoundError{Kind: "node", ID: id}
		c.fail("delete-node", err)
		return err
	}
	if len(chat.Nodes) <= 1 {
		err := mutate.ValidationError{Op: "delete-node", Message: mutate.ErrLastNode}
		c.fail("delete-node", err)
		return err
	}
	return c.gate("node", id, func() (model.Snapshot, error) {
		return mutate.DeleteNode(c.snap, wsID, chatID, id)
	})
}

func (c *Controller) DeleteChat(id string) error {
	ws, _ := c.st.Current(c.snap)
	if ws == nil {
		c.fail("delete-chat", ErrNoWorkspace)
		return ErrNoWorkspace
	}
	if _, ok := ws.Chat(id); !ok {
		err := mutate.NotFoundError{Kind: "chat", ID: id}
		c.fail("delete-chat", err)
		return err
	}
	wsID := ws.ID
	return c.gate("chat", id, func() (model.Snapshot, error) {
		return mutate.DeleteChat(c.snap, wsID, id)
	})
}

func (c *Controller) DeleteWorkspace(id string) error {
	if _, ok := c.snap.Workspace(id); !ok {
		err := mutate.NotFoundError{Kind: "workspace", ID: id}
		c.fail("delete-workspace", err)
		return err
	}
	return c.gate("workspace", id, func() (model.Snapshot, error) {
		return mutate.DeleteWorkspace(c.snap, id)
	})
}

func (c *Controller) DeleteCharacter(id string) error {
	ws, _ := c.st.Current(c.snap)
	if ws == nil {
		c.fail("delete-character", ErrNoWorkspace)
		return ErrNoWorkspace
	}
	if _, ok := ws.Character(id); !ok {
		err := mutate.NotFoundError{Kind: "character", ID: id}
		c.fail("delete-character", err)
		return err
	}
	wsID := ws.ID
	return c.gate("character", id, func() (model.Snapshot, error) {
		return mutate.DeleteCharacter(c.snap, wsID, id)
	})
}

func (p *Pending) String() string {
	return fmt.Sprintf("delete %s %s", p.Kind, p.ID)
}
