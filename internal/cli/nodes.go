package cli

import (
	"errors"
	"strings"

	"chatweaver/internal/model"
	"chatweaver/internal/view"

	"github.com/spf13/cobra"
)

type nodeDetail struct {
	WorkspaceID string          `json:"workspaceId"`
	ChatID      string          `json:"chatId"`
	Node        model.ChatNode  `json:"node"`
	Character   string          `json:"character"`
	Links       []view.EdgeView `json:"links"`
}

func newNodesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "Edit the nodes of a chat",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the nodes of a chat",
		Args:  cobra.NoArgs,
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			_, chat, err := e.useChat()
			if err != nil {
				return nil, err
			}
			return append([]model.ChatNode{}, chat.Nodes...), nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <node-id>",
		Short: "Show a node (searched across every workspace) with its links",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			id := strings.TrimSpace(args[0])
			for _, ws := range e.ctrl.Snapshot() {
				for i := range ws.Chats {
					chat := &ws.Chats[i]
					n, ok := chat.Node(id)
					if !ok {
						continue
					}
					return nodeDetail{
						WorkspaceID: ws.ID,
						ChatID:      chat.ID,
						Node:        *n,
						Character:   ws.CharacterName(n.Character),
						Links:       view.Links(chat, *n),
					}, nil
				}
			}
			return nil, errors.New("node not found: " + id)
		}),
	})

	cmd.AddCommand(newNodesAddCmd(app))

	cmd.AddCommand(&cobra.Command{
		Use:   "link <from-id> <to-id>",
		Short: "Link one node to another",
		Args:  cobra.ExactArgs(2),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			if args[0] == args[1] {
				// Link mode treats a click on the source as cancel.
				return nil, errors.New("cannot link a node to itself")
			}
			if err := e.ctrl.StartLink(args[0]); err != nil {
				return nil, err
			}
			if err := e.ctrl.ClickNode(args[1]); err != nil {
				return nil, err
			}
			return nodeAfter(e, args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unlink <from-id> <to-id>",
		Short: "Remove a link (the first one when duplicated)",
		Args:  cobra.ExactArgs(2),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			if err := e.ctrl.RemoveLink(args[0], args[1]); err != nil {
				return nil, err
			}
			return nodeAfter(e, args[0])
		}),
	})

	cmd.AddCommand(newNodesMoveCmd(app))

	cmd.AddCommand(&cobra.Command{
		Use:   "set-type <node-id> <text|answer|condition>",
		Short: "Change a node's type",
		Args:  cobra.ExactArgs(2),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			typ, err := model.ParseNodeType(args[1])
			if err != nil {
				return nil, err
			}
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			if err := e.ctrl.ChangeType(args[0], typ); err != nil {
				return nil, err
			}
			return nodeAfter(e, args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-message <node-id> <message>",
		Short: "Replace a node's message",
		Args:  cobra.ExactArgs(2),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			if err := e.ctrl.ChangeMessage(args[0], args[1]); err != nil {
				return nil, err
			}
			return nodeAfter(e, args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-character <node-id> [character-id]",
		Short: "Set who speaks a node (omit the character to set no one)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			n, ok := currentNode(e, args[0])
			if !ok {
				// Let the controller report the not-found error.
				return nil, e.ctrl.ClearCharacter(args[0])
			}
			target := ""
			if len(args) == 2 {
				target = strings.TrimSpace(args[1])
			}
			switch {
			case target == "":
				if err := e.ctrl.ClearCharacter(args[0]); err != nil {
					return nil, err
				}
			case n.CharacterID() != target:
				if err := e.ctrl.SetCharacter(args[0], target); err != nil {
					return nil, err
				}
			}
			return nodeAfter(e, args[0])
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <node-id>",
		Short: "Delete a node and every link to it (requires --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			if err := e.requireYes(); err != nil {
				return nil, err
			}
			if err := e.ctrl.DeleteNode(args[0]); err != nil {
				return nil, err
			}
			return map[string]any{"deleted": args[0]}, nil
		}),
	})

	return cmd
}

func newNodesAddCmd(app *App) *cobra.Command {
	var from string
	var message string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a text node below --from and link it",
		Args:  cobra.NoArgs,
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			from = strings.TrimSpace(from)
			if from == "" {
				return nil, errors.New("missing --from")
			}
			id, err := e.ctrl.AddChild(from)
			if err != nil {
				return nil, err
			}
			if message != "" {
				if err := e.ctrl.ChangeMessage(id, message); err != nil {
					return nil, err
				}
			}
			return nodeAfter(e, id)
		}),
	}
	cmd.Flags().StringVar(&from, "from", "", "Origin node id (required)")
	cmd.Flags().StringVar(&message, "message", "", "Initial message")
	return cmd
}

func newNodesMoveCmd(app *App) *cobra.Command {
	var x, y float64
	cmd := &cobra.Command{
		Use:   "move <node-id>",
		Short: "Place a node at --x/--y",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			n, ok := currentNode(e, args[0])
			if ok {
				if !cmd.Flags().Changed("x") {
					x = n.X
				}
				if !cmd.Flags().Changed("y") {
					y = n.Y
				}
			}
			if err := e.ctrl.MoveNode(args[0], x, y); err != nil {
				return nil, err
			}
			return nodeAfter(e, args[0])
		}),
	}
	cmd.Flags().Float64Var(&x, "x", 0, "Canvas x")
	cmd.Flags().Float64Var(&y, "y", 0, "Canvas y")
	return cmd
}

func currentNode(e *editor, id string) (model.ChatNode, bool) {
	_, chat := e.current()
	if chat == nil {
		return model.ChatNode{}, false
	}
	n, ok := chat.Node(id)
	if !ok {
		return model.ChatNode{}, false
	}
	return *n, true
}

func nodeAfter(e *editor, id string) (any, error) {
	n, ok := currentNode(e, id)
	if !ok {
		return nil, errors.New("node not found: " + id)
	}
	return n, nil
}
