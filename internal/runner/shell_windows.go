//go:build windows

package runner

import (
	"context"
	"os/exec"
)

const shellNotFoundMsg = "powershell.exe not found; is this a Windows system?"

// shellCommand runs script in a hidden, non-interactive PowerShell session.
func shellCommand(ctx context.Context, script string) *exec.Cmd {
	// #nosec G204
	return exec.CommandContext(ctx, "powershell.exe",
		"-NoProfile",
		"-NonInteractive",
		"-ExecutionPolicy", "Bypass",
		"-Command", script,
	)
}
