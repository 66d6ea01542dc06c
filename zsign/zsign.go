package zsign

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sign finds `zsign` on the PATH and runs Sign against it.
// See Command.Sign.
func Sign(ctx context.Context, name string, opts *SignOpts) (string, error) {
	return Command("zsign").Sign(ctx, name, opts)
}

// Command represents the path to a `zsign` executable.
type Command string

func (c Command) String() string {
	return string(c)
}

// SignOpts represent flags that can be passed to `zsign`.
type SignOpts struct {
	Key              string
	Password         string
	MobileProvision  string
	Output           string
	BundleIdentifier string
	Debug            bool
}

func (o *SignOpts) args() []string {
	args := []string{}

	if o != nil {
		if o.Key != "" {
			args = append(args, "-k", o.Key)
		}

		if o.Password != "" {
			args = append(args, "-p", o.Password)
		}

		if o.MobileProvision != "" {
			args = append(args, "-m", o.MobileProvision)
		}

		if o.Output != "" {
			args = append(args, "-o", o.Output)
		}

		if o.BundleIdentifier != "" {
			args = append(args, "-b", o.BundleIdentifier)
		}

		if o.Debug {
			args = append(args, "-d")
		}
	}

	return args
}

// Redacted renders the arguments that Sign would execute for the
// .ipa at name with the password replaced, suitable for logging.
func (c Command) Redacted(name string, opts *SignOpts) string {
	args := opts.args()

	for i, arg := range args {
		if arg == "-p" && i+1 < len(args) {
			args[i+1] = "[redacted]"
		}
	}

	return strings.Join(append([]string{c.String()}, append(args, name)...), " ")
}

// Sign executes `zsign` found at Command against the .ipa at name
// with flags derived from the given SignOpts, returning the
// combined stdout/stderr. The process is killed if ctx expires.
func (c Command) Sign(ctx context.Context, name string, opts *SignOpts) (string, error) {
	var (
		buf = new(bytes.Buffer)
		//nolint:gosec
		cmd = exec.CommandContext(ctx, c.String(), append(opts.args(), name)...)
	)

	cmd.Stdout = buf
	cmd.Stderr = buf

	err := cmd.Run()
	output := buf.String()

	switch {
	case err == nil:
		return output, nil
	case errors.Is(err, exec.ErrNotFound):
		return output, fmt.Errorf("%s not found: %w", c, err)
	case ctx.Err() != nil:
		return output, fmt.Errorf("%s killed: %w", c, ctx.Err())
	}

	exitErr := &exec.ExitError{}
	if errors.As(err, &exitErr) {
		return output, fmt.Errorf("%s exited %d: %s", c, exitErr.ExitCode(), strings.TrimSpace(output))
	}

	return output, err
}
