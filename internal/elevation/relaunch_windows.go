//go:build windows

package elevation

import (
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/ntfsview/ntfsview/internal/log"
)

// relaunchViaPowerShellRunAs builds argv's arguments into a single
// Start-Process invocation with -Verb RunAs -Wait -PassThru, the standard
// way to obtain a waitable handle on a UAC-elevated child process without
// ShellExecuteEx (golang.org/x/sys/windows exposes only the simpler,
// handle-less ShellExecute), per the "run as administrator" shell verb
// contract of spec §6.
func relaunchViaPowerShellRunAs(argv []string) (int, error) {
	exePath, err := os.Executable()
	if err != nil {
		return 0, errors.Wrap(err, "elevation: resolve current executable path")
	}

	argumentList := powerShellArgumentList(argv)
	script := strings.Join([]string{
		`$p = Start-Process -FilePath '` + psEscapeSingleQuoted(exePath) + `'`,
		`-ArgumentList ` + argumentList,
		`-Verb RunAs -Wait -PassThru`,
		`exit $p.ExitCode`,
	}, " ")

	log.Infof("elevation", "relaunching as administrator")
	cmd := exec.Command("powershell.exe", "-NoProfile", "-NonInteractive", "-Command", script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, errors.Wrap(err, "elevation: run elevated child")
	}
	return 0, nil
}

// powerShellArgumentList renders argv as a PowerShell array literal
// suitable for -ArgumentList, quoting each element.
func powerShellArgumentList(argv []string) string {
	if len(argv) == 0 {
		return "@()"
	}
	quoted := make([]string, len(argv))
	for i, a := range argv {
		quoted[i] = "'" + psEscapeSingleQuoted(a) + "'"
	}
	return "@(" + strings.Join(quoted, ",") + ")"
}

func psEscapeSingleQuoted(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
