package otasign

import "context"

// SignRequest holds the workspace paths and credential material
// that a Signer needs to re-sign one application archive.
type SignRequest struct {
	// IPA is the path to the unsigned .ipa.
	IPA string
	// Key is the path to the .p12 signing certificate.
	Key string
	// KeyPassword unlocks Key. It must never be logged.
	KeyPassword string
	// MobileProvision is the path to the .mobileprovision profile.
	MobileProvision string
	// Output is the path the signed .ipa must be written to.
	Output string
}

// SignResult is only valid if the Signer returned a nil error,
// which implies the archive at Path exists and is non-empty.
type SignResult struct {
	Path        string
	Diagnostics string
}

// Signer re-signs an application archive. Implementations wrap
// a concrete signing tool so that the rest of the system is
// agnostic to which one is deployed.
type Signer interface {
	Sign(context.Context, *SignRequest) (*SignResult, error)
}
