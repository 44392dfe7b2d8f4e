package cli

import (
	"chatweaver/internal/publish"

	"github.com/spf13/cobra"
)

type publishFlags struct {
	to        string
	html      bool
	ids       bool
	overwrite bool
}

func (f *publishFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.to, "to", "", "Output directory (required)")
	cmd.Flags().BoolVar(&f.html, "html", false, "Write HTML instead of Markdown")
	cmd.Flags().BoolVar(&f.ids, "ids", false, "Include node ids in step headings")
	cmd.Flags().BoolVar(&f.overwrite, "overwrite", false, "Overwrite existing files")
}

func (f *publishFlags) options() publish.WriteOptions {
	return publish.WriteOptions{HTML: f.html, IncludeIDs: f.ids, Overwrite: f.overwrite}
}

func newPublishCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Render chats as readable Markdown or HTML scripts",
	}

	var chatFlags publishFlags
	chatCmd := &cobra.Command{
		Use:   "chat <chat-id>",
		Short: "Publish one chat",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			ws, err := e.useWorkspace()
			if err != nil {
				return nil, err
			}
			return publish.WriteChat(ws, args[0], chatFlags.to, chatFlags.options())
		}),
	}
	chatFlags.bind(chatCmd)

	var wsFlags publishFlags
	wsCmd := &cobra.Command{
		Use:   "workspace",
		Short: "Publish every chat of a workspace",
		Args:  cobra.NoArgs,
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			ws, err := e.useWorkspace()
			if err != nil {
				return nil, err
			}
			return publish.WriteWorkspace(ws, wsFlags.to, wsFlags.options())
		}),
	}
	wsFlags.bind(wsCmd)

	cmd.AddCommand(chatCmd, wsCmd)
	return cmd
}
