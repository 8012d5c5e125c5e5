// Package process manages the lifetime of renderer subprocesses.
package process

import (
	"errors"
	"os"
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait keeps draining I/O after the process was
// killed because its context ended.
const WaitDelay = 2 * time.Second

// Configure prepares cmd so that canceling its context kills the whole
// process tree, not only the direct child. Layout engines invoked by dot may
// fork helpers that would otherwise outlive the run.
func Configure(cmd *exec.Cmd) {
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return err
		}
		return nil
	}
	cmd.WaitDelay = WaitDelay
}
