package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pr0ny/vue-template-tester/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the persisted generation settings",
	Long: `The settings record holds the per-project defaults (extra imports, selector
template, import style) used when neither a flag nor the config file sets them.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every settings key and its value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store := settingsStore()
		record := store.Load()

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "# %s\n", store.Path)
		for _, key := range settings.Keys() {
			value, err := record.Get(key)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%-13s %q\n", key+":", value)
		}
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Change one settings key",
	Args:      cobra.ExactArgs(2),
	ValidArgs: settings.Keys(),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := settingsStore()
		if _, err := store.Update(args[0], args[1]); err != nil {
			return fmt.Errorf("updating %s: %w", store.Path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", args[0], store.Path)
		return nil
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the settings record so defaults apply",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store := settingsStore()
		if err := store.Reset(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", store.Path)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}
