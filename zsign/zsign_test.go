package zsign

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, script string) Command {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for zsign")
	}

	name := filepath.Join(t.TempDir(), "zsign")
	if err := os.WriteFile(name, []byte(script), 0700); err != nil {
		t.Fatal(err)
	}

	return Command(name)
}

func TestSignOptsArgs(t *testing.T) {
	opts := &SignOpts{
		Key:             "cert.p12",
		Password:        "hunter2",
		MobileProvision: "profile.mobileprovision",
		Output:          "signed.ipa",
	}

	if args := strings.Join(opts.args(), " "); args != "-k cert.p12 -p hunter2 -m profile.mobileprovision -o signed.ipa" {
		t.Error("unexpected args", args)
	}
}

func TestRedacted(t *testing.T) {
	redacted := Command("zsign").Redacted("input.ipa", &SignOpts{
		Key:             "cert.p12",
		Password:        "hunter2",
		MobileProvision: "profile.mobileprovision",
		Output:          "signed.ipa",
	})

	if strings.Contains(redacted, "hunter2") {
		t.Error("password leaked into", redacted)
	}

	if !strings.Contains(redacted, "[redacted]") {
		t.Error("expected [redacted] in", redacted)
	}
}

func TestCommandSign(t *testing.T) {
	cmd := writeScript(t, `#!/bin/sh
out=
while [ "$#" -gt 0 ]; do
	case "$1" in
		-o) out="$2"; shift 2 ;;
		*) shift ;;
	esac
done
echo ">>> Signed"
printf signed > "$out"
`)

	output := filepath.Join(t.TempDir(), "signed.ipa")

	out, err := cmd.Sign(t.Context(), "input.ipa", &SignOpts{Output: output})
	if err != nil {
		t.Error(err)
		t.FailNow()
	}

	if !strings.Contains(out, ">>> Signed") {
		t.Error("unexpected output", out)
	}

	if _, err = os.Stat(output); err != nil {
		t.Error(err)
	}
}

func TestCommandSignNonZeroExit(t *testing.T) {
	cmd := writeScript(t, `#!/bin/sh
echo "bad password" >&2
exit 1
`)

	out, err := cmd.Sign(t.Context(), "input.ipa", &SignOpts{Output: "signed.ipa"})
	if err == nil {
		t.Error("expected error")
		t.FailNow()
	}

	if !strings.Contains(out, "bad password") {
		t.Error("diagnostics not captured:", out)
	}

	if !strings.Contains(err.Error(), "bad password") {
		t.Error("diagnostics not surfaced:", err)
	}
}

func TestCommandSignNotFound(t *testing.T) {
	if _, err := Command(filepath.Join(t.TempDir(), "zsign")).Sign(t.Context(), "input.ipa", nil); !errors.Is(err, exec.ErrNotFound) && !errors.Is(err, os.ErrNotExist) {
		t.Error("expected not found error, got", err)
	}
}

func TestCommandSignTimeout(t *testing.T) {
	cmd := writeScript(t, `#!/bin/sh
sleep 10
`)

	ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond*100)
	defer cancel()

	if _, err := cmd.Sign(ctx, "input.ipa", nil); !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected deadline exceeded, got", err)
	}
}
