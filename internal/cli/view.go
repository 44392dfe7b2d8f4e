package cli

import (
	"fmt"
	"strings"

	"chatweaver/internal/session"
	"chatweaver/internal/store"
	"chatweaver/internal/view"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newViewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print the derived canvas of a chat (nodes, edges, anchors)",
		Args:  cobra.NoArgs,
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			prefs, err := store.LoadPrefs()
			if err != nil {
				e.log.Sugar().Warnw("prefs unreadable; using defaults", "err", err)
			}
			opts := view.Options{
				ShowNodeIDs:              prefs.ShowNodeIDs,
				ShowConditionConnections: prefs.ShowConditionsConnections,
			}
			if opts.ShowNodeIDs, err = onOff(cmd.Flags(), "ids", opts.ShowNodeIDs); err != nil {
				return nil, err
			}
			if opts.ShowConditionConnections, err = onOff(cmd.Flags(), "conditions", opts.ShowConditionConnections); err != nil {
				return nil, err
			}
			return e.ctrl.Canvas(opts), nil
		}),
	}
	cmd.Flags().String("ids", "", "Override the showNodeIds preference (on|off)")
	cmd.Flags().String("conditions", "", "Override the showConditionsConnections preference (on|off)")
	return cmd
}

// onOff reads an on|off override flag, keeping dflt when the flag was not given.
func onOff(fs *pflag.FlagSet, name string, dflt bool) (bool, error) {
	if !fs.Changed(name) {
		return dflt, nil
	}
	v, err := fs.GetString(name)
	if err != nil {
		return dflt, err
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	default:
		return dflt, fmt.Errorf("--%s: expected on|off, got %q", name, v)
	}
}

// step is one screen of a scripted playback.
type step struct {
	NodeID    string           `json:"nodeId"`
	Speaker   string           `json:"speaker"`
	Message   string           `json:"message"`
	Choices   []session.Choice `json:"choices"`
	CanFinish bool             `json:"canFinish"`
	Chosen    string           `json:"chosen,omitempty"`
}

func newPlayCmd(app *App) *cobra.Command {
	var choose []string
	cmd := &cobra.Command{
		Use:   "play <text-node-id>",
		Short: "Play a chat from a text node, following --choose ids in order",
		Args:  cobra.ExactArgs(1),
		RunE: run(app, func(cmd *cobra.Command, e *editor, args []string) (any, error) {
			if _, _, err := e.useChat(); err != nil {
				return nil, err
			}
			if err := e.ctrl.Play(args[0]); err != nil {
				return nil, err
			}
			out := []step{}
			for _, target := range choose {
				target = strings.TrimSpace(target)
				s := screen(e)
				s.Chosen = target
				out = append(out, s)
				if err := e.ctrl.Choose(target); err != nil {
					return nil, err
				}
			}
			out = append(out, screen(e))
			e.ctrl.FinishPlayback()
			return out, nil
		}),
	}
	cmd.Flags().StringSliceVar(&choose, "choose", nil, "Choice target ids, in order")
	return cmd
}

func screen(e *editor) step {
	pv := view.Playback(e.ctrl.Snapshot(), e.ctrl.State())
	if pv == nil {
		return step{}
	}
	return step{NodeID: pv.NodeID, Speaker: pv.Speaker, Message: pv.Message, Choices: pv.Choices, CanFinish: pv.CanFinish}
}
