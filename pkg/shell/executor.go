package shell

import (
	"bytes"
	"os/exec"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Result is the observed outcome of one guarded invocation. TimedOut is a
// distinct outcome, not an error: the command was abandoned when the deadline
// fired and its exit code is meaningless.
type Result struct {
	Output   string
	ExitCode int
	TimedOut bool
}

type Command struct {
	Cmd     *exec.Cmd
	Timeout time.Duration
}

func NewCommand(dir string, timeout time.Duration, name string, args ...string) *Command {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	// own process group so a timed-out toolchain and its children are reaped together
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	return &Command{Cmd: cmd, Timeout: timeout}
}

// Run starts the command and races its completion against the deadline.
// Stdout and stderr are captured into one combined buffer. When the timer
// wins the race the process group is killed and the buffered output is
// discarded.
func (c *Command) Run() (*Result, error) {
	var combined bytes.Buffer
	c.Cmd.Stdout = &combined
	c.Cmd.Stderr = &combined

	if err := c.Cmd.Start(); err != nil {
		return nil, errors.Wrapf(err, "failed to start %s", c.Cmd.Path)
	}

	done := make(chan error, 1)
	go func() {
		done <- c.Cmd.Wait()
	}()

	timer := time.NewTimer(c.Timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		unix.Kill(-c.Cmd.Process.Pid, unix.SIGKILL)
		<-done
		return &Result{TimedOut: true}, nil
	case err := <-done:
		res := &Result{Output: combined.String()}
		if err != nil {
			exitErr, ok := err.(*exec.ExitError)
			if !ok {
				return nil, errors.Wrapf(err, "failed to run %s", c.Cmd.Path)
			}
			res.ExitCode = exitErr.ExitCode()
		}
		return res, nil
	}
}
