// Package shellprobe implements the shell-out capability trait spec.md
// §9 calls for: command_exists(name) and command_output(argv) ->
// exit-code+stdout, used by the Linux and Darwin security-tool scanners
// to probe for `which`, `systemctl`, `pgrep`, `spctl`, `csrutil`,
// `fdesetup`, and `defaults read` without building commands by string
// concatenation.
package shellprobe

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

// Prober is the capability trait. Implementations never build argv by
// concatenating untrusted input; every caller passes a fixed command
// name and a literal argument list.
type Prober interface {
	CommandExists(ctx context.Context, name string) bool
	CommandOutput(ctx context.Context, argv ...string) (exitCode int, stdout string, err error)
}

// defaultTimeout bounds any single shell-out, keeping probes inside the
// discovery scan's 15s wall-clock budget (spec.md §4.1).
const defaultTimeout = 3 * time.Second

// System is the production Prober, backed by os/exec.
type System struct{}

func (System) CommandExists(ctx context.Context, name string) bool {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	path, err := exec.LookPath(name)
	return err == nil && path != ""
}

func (System) CommandOutput(ctx context.Context, argv ...string) (int, string, error) {
	if len(argv) == 0 {
		return -1, "", exec.ErrNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			return -1, strings.TrimSpace(out.String()), err
		}
	}
	return exitCode, strings.TrimSpace(out.String()), nil
}
