package cli

import (
	"path/filepath"

	"chatweaver/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a store in --dir (or ./.chatweaver) seeded with one workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Dir == "" {
				abs, err := filepath.Abs(store.DirName)
				if err != nil {
					return writeErr(cmd, err)
				}
				app.Dir = abs
			}
			return run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
				if err := e.store.Ensure(); err != nil {
					return nil, err
				}
				// Writes the loaded (or default) snapshot so the backend file exists.
				e.out.Submit(e.ctrl.Snapshot())
				return map[string]any{
					"dir":        e.store.Dir,
					"backend":    e.app.Backend,
					"workspaces": len(e.ctrl.Snapshot()),
				}, nil
			})(cmd, args)
		},
	}
}
