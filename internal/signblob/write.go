package signblob

import (
	"context"
	"io"
	"os"

	"github.com/otasign/otasign/ios"
	"gocloud.dev/blob"
	"howett.net/plist"
)

// WriteSignedApp copies the signed .ipa at name into the bucket
// alongside its OTA manifest, returning the archive's size.
func WriteSignedApp(ctx context.Context, bucket *blob.Bucket, id, name string, manifest *ios.Manifest) (int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	ipaW, err := bucket.NewWriter(ctx, IPAKey(id), &blob.WriterOptions{ContentType: ios.ContentTypeIPA})
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(ipaW, f)
	if err != nil {
		_ = ipaW.Close()
		return 0, err
	}

	if err = ipaW.Close(); err != nil {
		return 0, err
	}

	manifestW, err := bucket.NewWriter(ctx, ManifestKey(id), &blob.WriterOptions{ContentType: ios.ContentTypePlist})
	if err != nil {
		return 0, err
	}

	enc := plist.NewEncoder(manifestW)
	enc.Indent("  ")

	if err = enc.Encode(manifest); err != nil {
		_ = manifestW.Close()
		return 0, err
	}

	return n, manifestW.Close()
}
