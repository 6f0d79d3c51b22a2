package clipboard

import (
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Command is a clipboard program that reads the payload from stdin.
type Command struct {
	Program string
	Args    []string
}

// Name returns the program and its arguments.
func (c Command) Name() string {
	return strings.TrimSpace(c.Program + " " + strings.Join(c.Args, " "))
}

// Copy runs the program with data on stdin. It succeeds only when every byte
// was written and the program exited with status zero.
//
// Stdout and stderr go to the null device: wl-copy and xclip fork a child
// that keeps serving the selection, and a captured pipe would make Wait
// block until that child exits.
func (c Command) Copy(data []byte) error {
	cmd := exec.Command(c.Program, c.Args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%s: failed to open stdin: %w", c.Program, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: %w", c.Program, err)
	}

	// Wait closes stdin once the program exits, which unblocks a writer
	// stuck on a program that stopped reading.
	var g errgroup.Group
	g.Go(func() error {
		_, writeErr := stdin.Write(data)
		closeErr := stdin.Close()
		if writeErr != nil {
			return writeErr
		}
		return closeErr
	})
	waitErr := cmd.Wait()
	writeErr := g.Wait()

	if waitErr != nil {
		return fmt.Errorf("%s: %w", c.Program, waitErr)
	}
	if writeErr != nil {
		return fmt.Errorf("%s: failed to write input: %w", c.Program, writeErr)
	}
	return nil
}
