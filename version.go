package otasign

// Semver is overridable at build time via
// -ldflags "-X github.com/otasign/otasign.Semver=...".
var Semver = "0.1.0"

// SemVer returns the version of otasign.
func SemVer() string {
	return Semver
}
