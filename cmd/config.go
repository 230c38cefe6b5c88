package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ntfsview/ntfsview/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or change persisted configuration",
}

func init() {
	Root.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configGetCmd, configSetCmd)
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print all configuration keys and their current values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.GetCacheDir()
		if err != nil {
			fmt.Println("cache-dir: (not configured)")
			return nil
		}
		fmt.Printf("cache-dir: %s\n", dir)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of a single configuration key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "cache-dir":
			dir, err := config.GetCacheDir()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		default:
			return errors.Errorf("unknown config key %q", args[0])
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a configuration key to a new value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "cache-dir":
			canon, err := config.SetCacheDir(args[1])
			if err != nil {
				return err
			}
			fmt.Printf("cache-dir set to %s\n", canon)
			return nil
		default:
			return errors.Errorf("unknown config key %q", args[0])
		}
	},
}
