package signhttp

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/otasign/otasign/internal/signblob"
	"github.com/otasign/otasign/internal/signerr"
	"github.com/otasign/otasign/ios"
	"gocloud.dev/blob"
)

func getITMSServices(bucket *blob.Bucket, base *url.URL) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			ctx    = r.Context()
			id     = artifactID(r)
			pretty = pretty(r)
		)

		if !signblob.ManifestExists(ctx, bucket, id) {
			_ = respondErrorJSON(w, signerr.HTTPStatusCodeError(fmt.Errorf("not found"), http.StatusNotFound), pretty)
			return
		}

		b := base
		if b == nil {
			var err error
			if b, err = baseURLFromRequest(r); err != nil {
				_ = respondErrorJSON(w, err, pretty)
				return
			}
		}
		b = forceHTTPS(b)

		values := url.Values{}
		values.Add("action", "download-manifest")
		values.Add("url", b.JoinPath("/apps", id, "manifest.plist").String())

		http.Redirect(w, r, (&url.URL{
			Scheme:   ios.SchemeITMSServices,
			RawQuery: values.Encode(),
		}).String(), http.StatusMovedPermanently)
	}
}
