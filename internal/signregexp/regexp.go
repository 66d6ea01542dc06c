package signregexp

import "regexp"

var (
	UUID = regexp.MustCompile("^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$")

	IPA             = regexp.MustCompile(`(?i)^[\w/ .-]+\.ipa$`)
	P12             = regexp.MustCompile(`(?i)^[\w/ .-]+\.p12$`)
	MobileProvision = regexp.MustCompile(`(?i)^[\w/ .-]+\.mobileprovision$`)
)
