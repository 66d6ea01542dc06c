package otasign

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/otasign/otasign/internal/signerr"
	"github.com/otasign/otasign/internal/signregexp"
)

// SignedApp describes the outcome of a successful signing
// request: where the signed archive and its OTA manifest can
// be downloaded from and the metadata they were built with.
type SignedApp struct {
	ID               string `json:"id,omitempty" unixtable:"-"`
	BundleName       string `json:"bundleName,omitempty"`
	BundleIdentifier string `json:"bundleIdentifier,omitempty"`
	Version          string `json:"version,omitempty"`
	Size             int64  `json:"size,omitempty" unixtable:"-"`
	IPAURL           string `json:"ipaURL,omitempty" unixtable:"-"`
	ManifestURL      string `json:"manifestURL,omitempty" unixtable:"-"`
	InstallURL       string `json:"installURL,omitempty"`
}

func ValidateSignedApp(app *SignedApp) error {
	errs := []error{}

	if app.ID != "" && !signregexp.IsUUID(app.ID) {
		errs = append(errs, fmt.Errorf("invalid app ID %s", app.ID))
	}

	if app.BundleIdentifier == "" {
		errs = append(errs, fmt.Errorf("empty bundle identifier"))
	}

	if app.Version == "" {
		errs = append(errs, fmt.Errorf("empty bundle version"))
	}

	return signerr.HTTPStatusCodeError(errors.Join(errs...), http.StatusBadRequest)
}
