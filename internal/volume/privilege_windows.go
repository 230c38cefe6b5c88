//go:build windows

package volume

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/ntfsview/ntfsview/internal/log"
)

// privilegeNames are the process token privileges needed to open a raw
// volume handle and read $MFT as a backup/restore operator would, per the
// original dumper's enable_backup_privileges.
var privilegeNames = []string{
	"SeBackupPrivilege",
	"SeRestorePrivilege",
	"SeSecurityPrivilege",
}

func enablePrivileges() error {
	var token windows.Token
	process, err := windows.GetCurrentProcess()
	if err != nil {
		return errors.Wrap(err, "volume: get current process")
	}
	if err := windows.OpenProcessToken(process, windows.TOKEN_ADJUST_PRIVILEGES|windows.TOKEN_QUERY, &token); err != nil {
		return errors.Wrap(err, "volume: open process token")
	}
	defer token.Close()

	var firstErr error
	for _, name := range privilegeNames {
		if err := enableOnePrivilege(token, name); err != nil {
			log.Warnf("privilege", "could not enable %s: %v", name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func enableOnePrivilege(token windows.Token, name string) error {
	var luid windows.LUID
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return errors.Wrap(err, "encode privilege name")
	}
	if err := windows.LookupPrivilegeValue(nil, namePtr, &luid); err != nil {
		return errors.Wrap(err, "lookup privilege value")
	}

	privileges := windows.Tokenprivileges{
		PrivilegeCount: 1,
		Privileges: [1]windows.LUIDAndAttributes{
			{Luid: luid, Attributes: windows.SE_PRIVILEGE_ENABLED},
		},
	}

	return windows.AdjustTokenPrivileges(token, false, &privileges, 0, nil, nil)
}
