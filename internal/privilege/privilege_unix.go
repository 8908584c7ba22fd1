//go:build !windows

package privilege

import "os"

// elevated treats root as the non-Windows equivalent of Administrator.
func elevated() bool {
	return os.Geteuid() == 0
}
