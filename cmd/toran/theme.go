package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arthur-debert/toran/settings"
)

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light|toggle]",
		Short:     "Show or change the dashboard theme",
		Long:      `Show the stored theme, set it to dark or light, or toggle it.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"dark", "light", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := a.openKV()
			if err != nil {
				return err
			}

			var theme settings.Theme
			switch {
			case len(args) == 0:
				theme, err = settings.Load(kv)
			case args[0] == "toggle":
				theme, err = settings.Toggle(kv)
			default:
				theme, err = settings.ParseTheme(args[0])
				if err != nil {
					return NewValidationError("set theme", "theme", args[0], "Use dark, light or toggle")
				}
				err = settings.Save(kv, theme)
			}
			if err != nil {
				return WrapError("update theme", err)
			}

			if len(args) > 0 {
				a.logger.Info("theme changed", zap.String("theme", theme.String()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", theme)
			return nil
		},
	}
}
