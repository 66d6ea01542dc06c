package zsign

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/otasign/otasign"
)

func TestSignerRequiresOutputArchive(t *testing.T) {
	// Exits 0 without writing the signed archive.
	cmd := writeScript(t, `#!/bin/sh
echo ">>> Signed"
`)

	_, err := (&Signer{Command: cmd}).Sign(t.Context(), &otasign.SignRequest{
		IPA:    "input.ipa",
		Output: filepath.Join(t.TempDir(), "signed.ipa"),
	})
	if err == nil {
		t.Error("expected error")
		t.FailNow()
	}

	if !strings.Contains(err.Error(), "no signed archive") {
		t.Error("unexpected error", err)
	}
}

func TestSignerDiagnosticsOnFailure(t *testing.T) {
	cmd := writeScript(t, `#!/bin/sh
echo "invalid provisioning profile"
exit 2
`)

	res, err := (&Signer{Command: cmd}).Sign(t.Context(), &otasign.SignRequest{
		IPA:    "input.ipa",
		Output: filepath.Join(t.TempDir(), "signed.ipa"),
	})
	if err == nil {
		t.Error("expected error")
		t.FailNow()
	}

	if !strings.Contains(res.Diagnostics, "invalid provisioning profile") {
		t.Error("diagnostics not captured:", res.Diagnostics)
	}
}
