package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kezou/pacer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Long:  `Print the configuration file path and every resolved setting.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}

		cfg := app.config

		if jsonOutput {
			return printJSON(map[string]interface{}{
				"config_file": path,
				"data_dir":    cfg.Storage.DataDir,
				"reading":     map[string]interface{}{"wpm": cfg.Reading.WPM},
				"focus": map[string]interface{}{
					"focus_duration":  cfg.Focus.FocusDuration.String(),
					"short_break":     cfg.Focus.ShortBreak.String(),
					"long_break":      cfg.Focus.LongBreak.String(),
					"custom_duration": cfg.Focus.CustomDuration.String(),
				},
				"display": map[string]interface{}{
					"mode":       cfg.Display.Mode,
					"font":       cfg.Display.Font,
					"theme":      cfg.Display.Theme,
					"font_scale": cfg.Display.FontScale,
					"brightness": cfg.Display.Brightness,
					"glow":       cfg.Display.Glow,
					"bold":       cfg.Display.Bold,
				},
				"notifications": map[string]interface{}{
					"enabled": cfg.Notifications.Enabled,
					"sound":   cfg.Notifications.Sound,
				},
				"mcp":      map[string]interface{}{"enabled": cfg.MCP.Enabled},
				"bindings": cfg.Bindings,
			})
		}

		fmt.Println()
		fmt.Printf("  Config file:  %s\n", path)
		fmt.Printf("  Data dir:     %s\n", cfg.Storage.DataDir)
		fmt.Println()
		fmt.Println("  Reading:")
		fmt.Printf("    Pace:              %d wpm\n", cfg.Reading.WPM)
		fmt.Println()
		fmt.Println("  Focus timer:")
		fmt.Printf("    Focus:             %s\n", formatMinutes(time.Duration(cfg.Focus.FocusDuration)))
		fmt.Printf("    Short break:       %s\n", formatMinutes(time.Duration(cfg.Focus.ShortBreak)))
		fmt.Printf("    Long break:        %s\n", formatMinutes(time.Duration(cfg.Focus.LongBreak)))
		fmt.Printf("    Custom:            %s\n", formatMinutes(time.Duration(cfg.Focus.CustomDuration)))
		fmt.Println()
		fmt.Println("  Display:")
		fmt.Printf("    Mode:              %s\n", cfg.Display.Mode)
		fmt.Printf("    Font:              %s (scale %d)\n", cfg.Display.Font, cfg.Display.FontScale)
		fmt.Printf("    Theme:             %s\n", cfg.Display.Theme)
		fmt.Printf("    Brightness:        %d\n", cfg.Display.Brightness)
		fmt.Printf("    Glow:              %d\n", cfg.Display.Glow)
		fmt.Printf("    Bold:              %v\n", cfg.Display.Bold)
		fmt.Println()

		notifStatus := "off"
		if cfg.Notifications.Enabled {
			notifStatus = "on"
			if cfg.Notifications.Sound {
				notifStatus = "on (with sound)"
			}
		}
		fmt.Printf("  Notifications:  %s\n", notifStatus)

		mcpStatus := "disabled"
		if cfg.MCP.Enabled {
			mcpStatus = "enabled"
		}
		fmt.Printf("  MCP server:     %s\n", mcpStatus)

		if len(cfg.Bindings) > 0 {
			fmt.Printf("  Bindings:       %d changed from default (\"pacer bindings\" to list)\n", len(cfg.Bindings))
		} else {
			fmt.Printf("  Bindings:       defaults\n")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
