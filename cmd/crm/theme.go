package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ligue-crm/internal/infra/prefs"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark]",
	Short:     "Show or set the display theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{prefs.ThemeLight, prefs.ThemeDark},
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := prefs.DefaultPath()
		if err != nil {
			return err
		}
		store := prefs.NewStore(path)

		if len(args) == 1 {
			if err := store.SetTheme(args[0]); err != nil {
				return err
			}
		}

		theme, err := store.Theme()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	},
}
