package signhttp

import (
	_ "embed"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/otasign/otasign"
	"gocloud.dev/blob"
)

//go:embed index.html
var indexHTML []byte

// HandlerOpts bound the upload and the signing subprocess.
type HandlerOpts struct {
	MaxUploadBytes int64
	SignTimeout    time.Duration
}

func (o *HandlerOpts) maxUploadBytes() int64 {
	if o != nil && o.MaxUploadBytes > 0 {
		return o.MaxUploadBytes
	}

	return 1 << 30
}

func (o *HandlerOpts) signTimeout() time.Duration {
	if o != nil && o.SignTimeout > 0 {
		return o.SignTimeout
	}

	return time.Minute * 10
}

func NewHandler(signer otasign.Signer, bucket *blob.Bucket, base *url.URL, opts *HandlerOpts) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})

	r.Post("/api/v1/sign", signApp(signer, bucket, base, opts))

	r.Get(fmt.Sprintf("/apps/%s/itms-services", idParam), getITMSServices(bucket, base))

	r.Get(fmt.Sprintf("/apps/%s/%s", idParam, fileParam), getFile(bucket))

	return r
}
