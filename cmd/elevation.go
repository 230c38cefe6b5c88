package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ntfsview/ntfsview/internal/elevation"
)

var elevationCmd = &cobra.Command{
	Use:   "elevation",
	Short: "Inspect or exercise the administrator-elevation relaunch path",
}

func init() {
	Root.AddCommand(elevationCmd)
	elevationCmd.AddCommand(elevationCheckCmd, elevationTestCmd)
}

var elevationCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Print whether the current process is running elevated",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		elevated, err := elevation.IsElevated()
		if err != nil {
			return err
		}
		if elevated {
			fmt.Println("Elevated")
		} else {
			fmt.Println("Not Elevated")
		}
		return nil
	},
}

// elevationTestCmd relaunches the process's own "elevation check"
// subcommand elevated and waits for it, propagating the child's exit
// code, to exercise the relaunch path end-to-end without requiring an
// already-elevated shell.
var elevationTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Relaunch elevated and report the outcome of the relaunch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		code, err := elevation.Relaunch([]string{"elevation", "check"})
		if err != nil {
			return err
		}
		os.Exit(code)
		return nil
	},
}
