//go:build windows

package elevation

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

func isElevated() (bool, error) {
	process, err := windows.GetCurrentProcess()
	if err != nil {
		return false, errors.Wrap(err, "elevation: get current process")
	}
	var token windows.Token
	if err := windows.OpenProcessToken(process, windows.TOKEN_QUERY, &token); err != nil {
		return false, errors.Wrap(err, "elevation: open process token")
	}
	defer token.Close()

	return token.IsElevated(), nil
}

func relaunch(argv []string) (int, error) {
	return relaunchViaPowerShellRunAs(argv)
}
