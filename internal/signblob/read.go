package signblob

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/otasign/otasign/internal/signerr"
	"github.com/otasign/otasign/ios"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

func NewArtifactReader(ctx context.Context, bucket *blob.Bucket, id, file string) (io.ReadCloser, string, error) {
	var (
		key         string
		contentType string
	)
	switch {
	case strings.EqualFold(path.Ext(file), ".ipa"):
		key = IPAKey(id)
		contentType = ios.ContentTypeIPA
	case strings.EqualFold(file, "manifest.plist"):
		key = ManifestKey(id)
		contentType = ios.ContentTypePlist
	default:
		return nil, "", signerr.HTTPStatusCodeError(fmt.Errorf("no such file %s", file), http.StatusNotFound)
	}

	rc, err := bucket.NewReader(ctx, key, nil)
	if gcerrors.Code(err) == gcerrors.NotFound || rc == nil {
		return nil, "", signerr.HTTPStatusCodeError(fmt.Errorf("not found"), http.StatusNotFound)
	} else if err != nil {
		return nil, "", err
	}

	return rc, contentType, nil
}

func ManifestExists(ctx context.Context, bucket *blob.Bucket, id string) bool {
	exists, _ := bucket.Exists(ctx, ManifestKey(id))
	return exists
}
