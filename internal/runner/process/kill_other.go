//go:build !unix

package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

func setProcessGroup(_ *exec.Cmd) {}

// killProcess kills the started program.
func killProcess(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return fmt.Errorf("program was not started")
	}
	if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("could not kill process %d: %w", cmd.Process.Pid, err)
	}
	return nil
}
