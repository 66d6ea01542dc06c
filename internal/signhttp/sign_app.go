package signhttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"

	xslice "github.com/frantjc/x/slice"
	"github.com/otasign/otasign"
	"github.com/otasign/otasign/internal/signblob"
	"github.com/otasign/otasign/internal/signerr"
	"github.com/otasign/otasign/internal/signregexp"
	"github.com/otasign/otasign/internal/workspace"
	"github.com/otasign/otasign/ios"
	"gocloud.dev/blob"
)

func signApp(signer otasign.Signer, bucket *blob.Bucket, base *url.URL, opts *HandlerOpts) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			ctx    = r.Context()
			log    = otasign.LoggerFrom(ctx)
			pretty = pretty(r)
			max    = opts.maxUploadBytes()
		)

		// Reject declared-oversize uploads before writing anything.
		if r.ContentLength > max {
			_ = respondErrorJSON(w, signerr.HTTPStatusCodeError(
				fmt.Errorf("upload of %d bytes exceeds maximum of %d", r.ContentLength, max),
				http.StatusRequestEntityTooLarge,
			), pretty)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, max)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			httpStatusCode := http.StatusBadRequest

			maxBytesErr := &http.MaxBytesError{}
			if errors.As(err, &maxBytesErr) {
				httpStatusCode = http.StatusRequestEntityTooLarge
			}

			_ = respondErrorJSON(w, signerr.HTTPStatusCodeError(err, httpStatusCode), pretty)
			return
		}
		defer func() {
			_ = r.MultipartForm.RemoveAll()
		}()

		var (
			password        = r.FormValue("password")
			ipaFH, ipaErr   = formFile(r, "ipa", signregexp.IsIPA)
			keyFH, keyErr   = formFile(r, "p12", signregexp.IsP12)
			provFH, provErr = formFile(r, "provision", signregexp.IsMobileProvision)
		)
		if err := errors.Join(ipaErr, keyErr, provErr); err != nil {
			_ = respondErrorJSON(w, signerr.HTTPStatusCodeError(err, http.StatusBadRequest), pretty)
			return
		}

		ws, err := workspace.New()
		if err != nil {
			_ = respondErrorJSON(w, err, pretty)
			return
		}
		// Covers every exit path, success and failure alike, so no
		// uploaded credential material outlives the request.
		defer func() {
			if err := ws.Close(); err != nil {
				log.Error(err, "removing workspace "+ws.Dir())
			}
		}()

		for fh, name := range map[*multipart.FileHeader]string{
			ipaFH:  ws.IPA(),
			keyFH:  ws.Key(),
			provFH: ws.MobileProvision(),
		} {
			if err = saveFormFile(fh, name); err != nil {
				_ = respondErrorJSON(w, err, pretty)
				return
			}
		}

		info, err := ios.NewIPADecoder(ws.IPA()).Info(ctx)
		if err != nil {
			_ = respondErrorJSON(w, signerr.HTTPStatusCodeError(err, http.StatusUnprocessableEntity), pretty)
			return
		} else if info.CFBundleIdentifier == "" {
			_ = respondErrorJSON(w, signerr.HTTPStatusCodeError(
				fmt.Errorf("%s has no CFBundleIdentifier", ios.InfoPlistName),
				http.StatusUnprocessableEntity,
			), pretty)
			return
		}

		var (
			bundleName = xslice.Coalesce(info.CFBundleDisplayName, info.CFBundleName, "UnknownApp")
			version    = xslice.Coalesce(info.CFBundleShortVersionString, info.CFBundleVersion, "1.0")
		)

		log.Info("signing " + bundleName + " (" + info.CFBundleIdentifier + ")")

		// The signing tool is the authority on the credentials, so
		// inspection failures here are logged, not returned.
		if b, err := os.ReadFile(ws.Key()); err == nil {
			if identity, err := ios.DecodeIdentity(b, password); err != nil {
				log.V(1).Info("unable to decode signing certificate: " + err.Error())
			} else {
				log.Info("signing certificate " + identity.CommonName() + " " + identity.SHA256Fingerprint())
			}
		}

		if b, err := os.ReadFile(ws.MobileProvision()); err == nil {
			if profile, err := ios.DecodeProfile(b); err != nil {
				log.V(1).Info("unable to decode provisioning profile: " + err.Error())
			} else if profile.Expired() {
				log.Info("provisioning profile " + profile.Name + " expired " + profile.ExpirationDate.String())
			} else {
				log.Info("provisioning profile " + profile.Name)
			}
		}

		sctx, cancel := context.WithTimeout(ctx, opts.signTimeout())
		defer cancel()

		res, err := signer.Sign(sctx, &otasign.SignRequest{
			IPA:             ws.IPA(),
			Key:             ws.Key(),
			KeyPassword:     password,
			MobileProvision: ws.MobileProvision(),
			Output:          ws.SignedIPA(),
		})
		if err != nil {
			if res != nil {
				if diagnostics := strings.TrimSpace(res.Diagnostics); diagnostics != "" && !strings.Contains(err.Error(), diagnostics) {
					err = fmt.Errorf("%w: %s", err, diagnostics)
				}
			}

			_ = respondErrorJSON(w, err, pretty)
			return
		}

		b := base
		if b == nil {
			if b, err = baseURLFromRequest(r); err != nil {
				_ = respondErrorJSON(w, err, pretty)
				return
			}
		}
		b = forceHTTPS(b)

		var (
			ipaURL      = b.JoinPath("/apps", ws.ID, "signed.ipa").String()
			manifestURL = b.JoinPath("/apps", ws.ID, "manifest.plist").String()
		)

		manifest, err := ios.NewManifest(info.CFBundleIdentifier, version, bundleName, ipaURL)
		if err != nil {
			_ = respondErrorJSON(w, err, pretty)
			return
		}

		size, err := signblob.WriteSignedApp(ctx, bucket, ws.ID, res.Path, manifest)
		if err != nil {
			_ = respondErrorJSON(w, err, pretty)
			return
		}

		values := url.Values{}
		values.Add("action", "download-manifest")
		values.Add("url", manifestURL)

		app := &otasign.SignedApp{
			ID:               ws.ID,
			BundleName:       bundleName,
			BundleIdentifier: info.CFBundleIdentifier,
			Version:          version,
			Size:             size,
			IPAURL:           ipaURL,
			ManifestURL:      manifestURL,
			InstallURL: (&url.URL{
				Scheme:   ios.SchemeITMSServices,
				RawQuery: values.Encode(),
			}).String(),
		}

		w.WriteHeader(http.StatusCreated)
		_ = respondJSON(w, app, pretty)
	}
}

func formFile(r *http.Request, field string, valid func(string) bool) (*multipart.FileHeader, error) {
	f, fh, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing file field %s", field)
	}
	defer f.Close()

	if fh.Filename == "" || !valid(fh.Filename) {
		return nil, fmt.Errorf("unexpected file name %q for field %s", fh.Filename, field)
	}

	return fh, nil
}

func saveFormFile(fh *multipart.FileHeader, name string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(name)
	if err != nil {
		return err
	}

	if _, err = io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}

	return dst.Close()
}
