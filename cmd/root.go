// Package cmd wires the cobra subcommand tree for the ntfsview CLI, per
// spec §6's external interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ntfsview/ntfsview/internal/log"
)

// Root is the top-level command; subcommands register themselves onto it
// from their own init() functions, mirroring the teacher's cmd.Root
// registration style.
var Root = &cobra.Command{
	Use:   "ntfsview",
	Short: "Reads, caches, and searches NTFS Master File Tables",
	Long: `ntfsview extracts the raw MFT byte stream from one or more NTFS
volumes, parses it into file and directory entries, reconstructs full
paths, and makes the result searchable from the command line or a
terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.SetDebug(debug)
	},
}

func init() {
	Root.PersistentFlags().Bool("debug", false, "enable verbose debug logging")
}

// Execute runs the root command, printing any returned error to stderr
// and translating it into a non-zero process exit code.
func Execute() {
	if err := Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
