package workspace

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	ipaName             = "input.ipa"
	keyName             = "cert.p12"
	mobileProvisionName = "profile.mobileprovision"
	signedIPAName       = "signed.ipa"
)

// Workspace is the scratch directory for one signing request.
// Its name is unique so concurrent requests cannot collide.
type Workspace struct {
	// ID identifies the request, e.g. in artifact keys.
	ID string

	dir string
}

// New creates a Workspace under the system temporary root.
// Callers must Close it on every exit path.
func New() (*Workspace, error) {
	id := uuid.NewString()

	dir, err := os.MkdirTemp("", "otasign-"+id+"-*")
	if err != nil {
		return nil, err
	}

	return &Workspace{ID: id, dir: dir}, nil
}

func (w *Workspace) Dir() string {
	return w.dir
}

func (w *Workspace) IPA() string {
	return filepath.Join(w.dir, ipaName)
}

func (w *Workspace) Key() string {
	return filepath.Join(w.dir, keyName)
}

func (w *Workspace) MobileProvision() string {
	return filepath.Join(w.dir, mobileProvisionName)
}

func (w *Workspace) SignedIPA() string {
	return filepath.Join(w.dir, signedIPAName)
}

// Close deletes the Workspace and everything in it, including
// any credential material saved there.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.dir)
}
