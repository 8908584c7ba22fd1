//go:build !windows

package runner

import (
	"context"
	"os/exec"
)

const shellNotFoundMsg = "/bin/sh not found"

// shellCommand runs script through /bin/sh. Non-Windows platforms exist for
// development and CI only; the catalog commands themselves are PowerShell.
func shellCommand(ctx context.Context, script string) *exec.Cmd {
	// #nosec G204
	return exec.CommandContext(ctx, "/bin/sh", "-c", script)
}
