package cli

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"chatweaver/internal/store"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change user preferences",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.LoadPrefs()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the preferences file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.PrefsPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": p}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one preference (theme, showNodeIds, showConditionsConnections, nodeColors.<light|dark>.<accent|textNode|answerNode|conditionNode>)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.LoadPrefs()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := setPref(&p, args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SavePrefs(p); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	})
	return cmd
}

func setPref(p *store.Prefs, key, value string) error {
	value = strings.TrimSpace(value)
	boolVal := func(dst *bool) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return errors.New("expected true or false for " + key)
		}
		*dst = b
		return nil
	}

	switch key {
	case "theme":
		p.Theme = strings.ToLower(value)
		return nil
	case "showNodeIds":
		return boolVal(&p.ShowNodeIDs)
	case "showConditionsConnections":
		return boolVal(&p.ShowConditionsConnections)
	case "duplicateEdgesWhenAltDragging":
		return boolVal(&p.DuplicateEdgesWhenAltDragging)
	}

	parts := strings.Split(key, ".")
	if len(parts) != 3 || parts[0] != "nodeColors" {
		return errors.New("unknown preference: " + key)
	}
	var colors *store.NodeColors
	switch parts[1] {
	case store.ThemeLight:
		colors = &p.NodeColors.Light
	case store.ThemeDark:
		colors = &p.NodeColors.Dark
	default:
		return errors.New("unknown theme in key: " + key)
	}
	if err := validation.Validate(value, validation.Required, validation.Match(hexColor)); err != nil {
		return errors.New(key + ": " + err.Error())
	}
	switch parts[2] {
	case "accent":
		colors.Accent = value
	case "textNode":
		colors.TextNode = value
	case "answerNode":
		colors.AnswerNode = value
	case "conditionNode":
		colors.ConditionNode = value
	default:
		return errors.New("unknown colour: " + key)
	}
	return nil
}
