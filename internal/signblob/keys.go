package signblob

import "path"

func IPAKey(id string) string {
	return path.Join(id, "signed.ipa")
}

func ManifestKey(id string) string {
	return path.Join(id, "manifest.plist")
}
