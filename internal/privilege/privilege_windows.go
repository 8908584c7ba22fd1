//go:build windows

package privilege

import "golang.org/x/sys/windows"

// elevated reports whether the process token carries Administrator rights.
func elevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
