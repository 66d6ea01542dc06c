package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspaceClose(t *testing.T) {
	ws, err := New()
	if err != nil {
		t.Error(err)
		t.FailNow()
	}

	for _, name := range []string{ws.IPA(), ws.Key(), ws.MobileProvision()} {
		if filepath.Dir(name) != ws.Dir() {
			t.Error(name, "not under", ws.Dir())
		}

		if err = os.WriteFile(name, []byte("data"), 0600); err != nil {
			t.Error(err)
		}
	}

	if err = ws.Close(); err != nil {
		t.Error(err)
		t.FailNow()
	}

	if _, err = os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Error("workspace not removed:", ws.Dir())
	}
}

func TestWorkspaceUnique(t *testing.T) {
	a, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()

	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if a.Dir() == b.Dir() {
		t.Error("workspaces collide:", a.Dir())
	}

	if a.ID == b.ID {
		t.Error("workspace IDs collide:", a.ID)
	}
}
