package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// NPM installs packages with the npm CLI.
type NPM struct {
	// Bin is the npm executable name or path; defaults to "npm".
	Bin string
	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs `npm i` in opts.Directory. A non-zero exit is reported in
// Output.ExitCode rather than as an error.
func (n *NPM) Install(ctx context.Context, specs []string, opts Options) (*Output, error) {
	bin := n.Bin
	if bin == "" {
		bin = "npm"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("installing dependencies requires npm: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, Args(specs, opts)...)
	cmd.Dir = opts.Directory
	cmd.Env = SanitizedEnv(os.Environ())

	stdout, stderr := n.Stdout, n.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	if opts.Silent {
		stdout, stderr = io.Discard, io.Discard
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("running npm: %w", err)
	}
	return output, nil
}
