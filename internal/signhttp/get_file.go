package signhttp

import (
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/otasign/otasign/internal/signblob"
	"gocloud.dev/blob"
)

func getFile(bucket *blob.Bucket) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			ctx    = r.Context()
			id     = artifactID(r)
			file   = file(r)
			pretty = pretty(r)
		)

		rc, contentType, err := signblob.NewArtifactReader(ctx, bucket, id, file)
		if err != nil {
			_ = respondErrorJSON(w, err, pretty)
			return
		}
		defer rc.Close()

		w.Header().Set("Content-Type", contentType)
		if strings.EqualFold(path.Ext(file), ".ipa") {
			w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file))
		}

		_, _ = io.Copy(w, rc)
	}
}
