package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kezou/pacer/internal/config"
	"github.com/kezou/pacer/internal/dispatch"
)

// bindingsCmd represents the bindings command
var bindingsCmd = &cobra.Command{
	Use:   "bindings",
	Short: "Show the key-binding table",
	Long: `Print every reader action with its bound key. Rebind keys from inside
the reader (press k) or edit the bindings section of the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindings := dispatch.FromMap(app.config.Bindings)
		defaults := dispatch.DefaultMap()

		if jsonOutput {
			return printJSON(bindings.ToMap())
		}

		fmt.Printf("⌨️  Key bindings:\n\n")
		changed := 0
		for _, action := range dispatch.Actions() {
			marker := ""
			if bindings.Key(action) != defaults.Key(action) {
				marker = " *"
				changed++
			}
			fmt.Printf("  %-22s %s%s\n", action.Label(), bindings.Key(action), marker)
		}
		if changed > 0 {
			fmt.Printf("\n  * changed from default (%d). \"pacer bindings reset\" restores the defaults.\n", changed)
		}
		return nil
	},
}

var bindingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default key bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		app.config.Bindings = map[string]string{}
		if err := config.Save(app.config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Println("✅ Key bindings restored to defaults.")
		return nil
	},
}

func init() {
	bindingsCmd.AddCommand(bindingsResetCmd)
}
