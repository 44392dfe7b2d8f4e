package cli

import (
	"os"
	"strings"

	"chatweaver/internal/model"
	"chatweaver/internal/store"

	"github.com/spf13/cobra"
)

type summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}

func newWorkspacesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workspaces",
		Aliases: []string{"ws"},
		Short:   "List and manage workspaces",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List workspaces (with chat counts)",
		Args:  cobra.NoArgs,
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			out := []summary{}
			for _, w := range e.ctrl.Snapshot() {
				out = append(out, summary{ID: w.ID, Name: w.Name, Count: len(w.Chats)})
			}
			return out, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add a workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			id := e.ctrl.AddWorkspace()
			if len(args) == 1 {
				if err := e.ctrl.RenameWorkspace(id, args[0]); err != nil {
					return nil, err
				}
			}
			ws, _ := e.ctrl.Snapshot().Workspace(id)
			return ws, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <workspace-id> <name>",
		Short: "Rename a workspace",
		Args:  cobra.ExactArgs(2),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if err := e.ctrl.RenameWorkspace(args[0], args[1]); err != nil {
				return nil, err
			}
			return summary{ID: args[0], Name: args[1]}, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <workspace-id>",
		Short: "Delete a workspace and everything in it (requires --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if err := e.requireYes(); err != nil {
				return nil, err
			}
			if err := e.ctrl.DeleteWorkspace(args[0]); err != nil {
				return nil, err
			}
			return map[string]any{"deleted": args[0]}, nil
		}),
	})

	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "export <workspace-id>",
		Short: "Export a workspace as <name>-Chats.json",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			exp, err := store.ExportWorkspace(e.ctrl.Snapshot(), args[0])
			if err != nil {
				return nil, err
			}
			path, err := store.WriteExport(strings.TrimSpace(toDir), exp, overwrite)
			if err != nil {
				return nil, err
			}
			return map[string]any{"path": path, "contentType": exp.ContentType, "bytes": len(exp.Data)}, nil
		}),
	}
	cmd.Flags().StringVar(&toDir, "to", "", "Output directory (default: cwd)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing export file")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import an exported workspace (ids are kept unless they collide)",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return nil, err
			}
			ws, err := store.DecodeWorkspace(b)
			if err != nil {
				return nil, err
			}
			id, err := e.ctrl.ImportWorkspace(ws)
			if err != nil {
				return nil, err
			}
			got, _ := e.ctrl.Snapshot().Workspace(id)
			return summary{ID: got.ID, Name: got.Name, Count: len(got.Chats)}, nil
		}),
	}
}

func newChatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List and manage the chats of a workspace",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List chats (with node counts)",
		Args:  cobra.NoArgs,
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			ws, err := e.useWorkspace()
			if err != nil {
				return nil, err
			}
			out := []summary{}
			for _, c := range ws.Chats {
				out = append(out, summary{ID: c.ID, Name: c.Name, Count: len(c.Nodes)})
			}
			return out, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add a chat (starts with one empty text node)",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, err := e.useWorkspace(); err != nil {
				return nil, err
			}
			id, err := e.ctrl.AddChat()
			if err != nil {
				return nil, err
			}
			if len(args) == 1 {
				if err := e.ctrl.RenameChat(id, args[0]); err != nil {
					return nil, err
				}
			}
			ws, _ := e.current()
			c, _ := ws.Chat(id)
			return c, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <chat-id> <name>",
		Short: "Rename a chat",
		Args:  cobra.ExactArgs(2),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, err := e.useWorkspace(); err != nil {
				return nil, err
			}
			if err := e.ctrl.RenameChat(args[0], args[1]); err != nil {
				return nil, err
			}
			return summary{ID: args[0], Name: args[1]}, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <chat-id>",
		Short: "Delete a chat (requires --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, err := e.useWorkspace(); err != nil {
				return nil, err
			}
			if err := e.requireYes(); err != nil {
				return nil, err
			}
			if err := e.ctrl.DeleteChat(args[0]); err != nil {
				return nil, err
			}
			return map[string]any{"deleted": args[0]}, nil
		}),
	})
	return cmd
}

func newCharactersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "characters",
		Short: "List and manage the characters of a workspace",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List characters",
		Args:  cobra.NoArgs,
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			ws, err := e.useWorkspace()
			if err != nil {
				return nil, err
			}
			out := []model.Character{}
			return append(out, ws.Characters...), nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add [name]",
		Short: "Add a character",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, err := e.useWorkspace(); err != nil {
				return nil, err
			}
			id, err := e.ctrl.AddCharacter()
			if err != nil {
				return nil, err
			}
			if len(args) == 1 {
				if err := e.ctrl.RenameCharacter(id, args[0]); err != nil {
					return nil, err
				}
			}
			ws, _ := e.current()
			ch, _ := ws.Character(id)
			return ch, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <character-id> <name>",
		Short: "Rename a character",
		Args:  cobra.ExactArgs(2),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, err := e.useWorkspace(); err != nil {
				return nil, err
			}
			if err := e.ctrl.RenameCharacter(args[0], args[1]); err != nil {
				return nil, err
			}
			return model.Character{ID: args[0], Name: args[1]}, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <character-id>",
		Short: "Delete a character; nodes it speaks become \"no one\" (requires --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, err := e.useWorkspace(); err != nil {
				return nil, err
			}
			if err := e.requireYes(); err != nil {
				return nil, err
			}
			if err := e.ctrl.DeleteCharacter(args[0]); err != nil {
				return nil, err
			}
			return map[string]any{"deleted": args[0]}, nil
		}),
	})
	return cmd
}
