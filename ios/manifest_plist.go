package ios

import (
	"errors"
	"fmt"

	// Document what package can be used to marshal
	// the manifest structs below.
	_ "howett.net/plist"
)

const (
	SchemeITMSServices = "itms-services"
	ContentTypeIPA     = "application/octet-stream"
	ContentTypePlist   = "application/xml"
)

type Manifest struct {
	Items []ManifestItem `plist:"items"`
}

type ManifestItem struct {
	Assets   []ManifestItemAsset   `plist:"assets"`
	Metadata *ManifestItemMetadata `plist:"metadata"`
}

type ManifestItemAsset struct {
	Kind string `plist:"kind"`
	URL  string `plist:"url"`
}

type ManifestItemMetadata struct {
	BundleIdentifier   string `plist:"bundle-identifier"`
	BundleVersion      string `plist:"bundle-version"`
	Kind               string `plist:"kind"`
	PlatformIdentifier string `plist:"platform-identifier"`
	Title              string `plist:"title"`
}

// NewManifest builds the OTA installation manifest for a signed
// .ipa. Devices refuse manifests with empty fields, so it errors
// rather than produce one.
func NewManifest(bundleIdentifier, bundleVersion, title, ipaURL string) (*Manifest, error) {
	errs := []error{}

	if bundleIdentifier == "" {
		errs = append(errs, fmt.Errorf("empty bundle-identifier"))
	}

	if bundleVersion == "" {
		errs = append(errs, fmt.Errorf("empty bundle-version"))
	}

	if title == "" {
		errs = append(errs, fmt.Errorf("empty title"))
	}

	if ipaURL == "" {
		errs = append(errs, fmt.Errorf("empty software-package url"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Manifest{
		Items: []ManifestItem{
			{
				Assets: []ManifestItemAsset{
					{
						Kind: "software-package",
						URL:  ipaURL,
					},
				},
				Metadata: &ManifestItemMetadata{
					Kind:               "software",
					PlatformIdentifier: "com.apple.platform.iphoneos",
					BundleIdentifier:   bundleIdentifier,
					BundleVersion:      bundleVersion,
					Title:              title,
				},
			},
		},
	}, nil
}
