//go:build !windows

package process

import "syscall"

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID). Sweeps helper processes (GPU,
// zygote) that a plain kill of the browser PID can leave behind.
func KillProcessGroup(pid int) {
	// Best-effort cleanup; error ignored, the process may already be gone
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
