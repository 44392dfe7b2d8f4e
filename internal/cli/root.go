package cli

import (
	"fmt"
	"os"
	"strings"

	"chatweaver/internal/format"
	"chatweaver/internal/logging"
	"chatweaver/internal/store"
	"chatweaver/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Dir        string
	Backend    string
	Workspace  string
	Chat       string
	PrettyJSON bool
	Format     string
	LogLevel   string
	Yes        bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "chatweaver",
		Short:        "Branching dialogue editor (TUI + scriptable CLI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive editor
  chatweaver

  # Scriptable commands
  chatweaver workspaces list
  chatweaver nodes add --workspace ws-1 --chat chat-1 --from node-1

  # Render a chat as a readable script
  chatweaver publish chat chat-1 --to ./out
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := format.Parse(app.Format); err != nil {
			return writeErr(cmd, err)
		}
		b, err := store.ParseBackend(app.Backend)
		if err != nil {
			return writeErr(cmd, err)
		}
		app.Backend = b
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("CHATWEAVER_DIR", ""), "Path to store dir (default: nearest .chatweaver/ walking up from cwd)")
	cmd.PersistentFlags().StringVar(&app.Backend, "backend", envOr("CHATWEAVER_BACKEND", store.BackendSQLite), "Storage backend (sqlite|file)")
	cmd.PersistentFlags().StringVarP(&app.Workspace, "workspace", "w", envOr("CHATWEAVER_WORKSPACE", ""), "Workspace id (optional when only one exists)")
	cmd.PersistentFlags().StringVarP(&app.Chat, "chat", "c", "", "Chat id (optional when the workspace has one chat)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("CHATWEAVER_FORMAT", format.JSON), "Output format (json|edn|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("CHATWEAVER_LOG_LEVEL", "info"), "Log level for <dir>/chatweaver.log")
	cmd.PersistentFlags().BoolVarP(&app.Yes, "yes", "y", false, "Confirm destructive deletes")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newWorkspacesCmd(app))
	cmd.AddCommand(newChatsCmd(app))
	cmd.AddCommand(newCharactersCmd(app))
	cmd.AddCommand(newNodesCmd(app))
	cmd.AddCommand(newViewCmd(app))
	cmd.AddCommand(newPlayCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newPrefsCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(cmd *cobra.Command, app *App) error {
	s, err := storeFor(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	if err := s.Ensure(); err != nil {
		return writeErr(cmd, err)
	}
	log := logging.NewOrNop(s.Dir, app.LogLevel)
	defer func() { _ = log.Sync() }()

	prefs, err := store.LoadPrefs()
	if err != nil {
		log.Warn("prefs unreadable; using defaults", zap.Error(err))
	}
	return tui.Run(cmd.Context(), tui.Options{
		Store:   s,
		Backend: app.Backend,
		Prefs:   prefs,
		Logger:  log,
	})
}

func storeFor(app *App) (store.Store, error) {
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = d
	}
	return store.Store{Dir: dir}, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
