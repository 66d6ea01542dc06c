package ios

import (
	"strings"
	"testing"

	"software.sslmate.com/src/go-pkcs12"
)

func TestDecodeIdentity(t *testing.T) {
	key, cert := newTestCertificate(t)

	b, err := pkcs12.Modern.Encode(key, cert, nil, "hunter2")
	if err != nil {
		t.Fatal(err)
	}

	identity, err := DecodeIdentity(b, "hunter2")
	if err != nil {
		t.Error(err)
		t.FailNow()
	}

	if identity.CommonName() != "iPhone Distribution: Test" {
		t.Error("unexpected common name", identity.CommonName())
	}

	fingerprint := identity.SHA256Fingerprint()
	if len(fingerprint) != 95 || strings.Count(fingerprint, ":") != 31 {
		t.Error("unexpected fingerprint", fingerprint)
	}
}

func TestDecodeIdentityWrongPassword(t *testing.T) {
	key, cert := newTestCertificate(t)

	b, err := pkcs12.Modern.Encode(key, cert, nil, "hunter2")
	if err != nil {
		t.Fatal(err)
	}

	if _, err = DecodeIdentity(b, "wrong"); err == nil {
		t.Error("expected error for wrong password")
	}
}
