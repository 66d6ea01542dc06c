package signregexp

func IsUUID(name string) bool {
	return UUID.MatchString(name)
}

func IsIPA(name string) bool {
	return IPA.MatchString(name)
}

func IsP12(name string) bool {
	return P12.MatchString(name)
}

func IsMobileProvision(name string) bool {
	return MobileProvision.MatchString(name)
}
