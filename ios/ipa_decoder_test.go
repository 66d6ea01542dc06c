package ios

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testInfoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>com.example.test</string>
	<key>CFBundleName</key>
	<string>Test</string>
	<key>CFBundleDisplayName</key>
	<string>Test App</string>
	<key>CFBundleShortVersionString</key>
	<string>1.2.3</string>
	<key>CFBundleVersion</key>
	<string>42</string>
</dict>
</plist>`

func writeTestIPA(t *testing.T, files map[string]string) string {
	t.Helper()

	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for name, content := range files {
		f, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}

		if _, err = f.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	name := filepath.Join(t.TempDir(), "test.ipa")
	if err := os.WriteFile(name, buf.Bytes(), 0600); err != nil {
		t.Fatal(err)
	}

	return name
}

func TestIPADecoderInfo(t *testing.T) {
	name := writeTestIPA(t, map[string]string{
		"Payload/Test.app/Info.plist": testInfoPlist,
		"Payload/Test.app/Test":       "machocode",
	})

	info, err := NewIPADecoder(name).Info(t.Context())
	if err != nil {
		t.Error(err)
		t.FailNow()
	}

	if info.CFBundleIdentifier != "com.example.test" {
		t.Error("unexpected CFBundleIdentifier", info.CFBundleIdentifier)
	}

	if info.CFBundleDisplayName != "Test App" {
		t.Error("unexpected CFBundleDisplayName", info.CFBundleDisplayName)
	}

	if info.CFBundleShortVersionString != "1.2.3" {
		t.Error("unexpected CFBundleShortVersionString", info.CFBundleShortVersionString)
	}
}

func TestIPADecoderNotArchive(t *testing.T) {
	name := filepath.Join(t.TempDir(), "test.ipa")
	if err := os.WriteFile(name, []byte("garbage"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewIPADecoder(name).Info(t.Context()); !errors.Is(err, ErrNotArchive) {
		t.Error("expected ErrNotArchive, got", err)
	}
}

func TestIPADecoderInfoNotFound(t *testing.T) {
	name := writeTestIPA(t, map[string]string{
		"README.txt": "no app here",
	})

	if _, err := NewIPADecoder(name).Info(t.Context()); !errors.Is(err, ErrInfoNotFound) {
		t.Error("expected ErrInfoNotFound, got", err)
	}
}

func TestIPADecoderIgnoresNestedInfoPlists(t *testing.T) {
	name := writeTestIPA(t, map[string]string{
		"Payload/Test.app/Frameworks/Dep.framework/Info.plist": testInfoPlist,
	})

	if _, err := NewIPADecoder(name).Info(t.Context()); !errors.Is(err, ErrInfoNotFound) {
		t.Error("expected ErrInfoNotFound, got", err)
	}
}
