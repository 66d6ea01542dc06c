package otasign

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

type Client struct {
	HTTPClient *http.Client
	Base       *url.URL
}

func (c *Client) init() error {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Base == nil {
		var err error
		c.Base, err = url.Parse("http://localhost:8080/")
		return err
	}
	return nil
}

// Sign uploads the .ipa, .p12, and .mobileprovision at the given
// paths for signing and returns the signed app's download URLs.
func (c *Client) Sign(ctx context.Context, ipa, key, mobileProvision, password string) (*SignedApp, error) {
	if err := c.init(); err != nil {
		return nil, err
	}

	var (
		pr, pw = io.Pipe()
		mw     = multipart.NewWriter(pw)
	)

	go func() {
		if err := func() error {
			for field, name := range map[string]string{
				"ipa":       ipa,
				"p12":       key,
				"provision": mobileProvision,
			} {
				f, err := os.Open(name)
				if err != nil {
					return err
				}
				defer f.Close()

				part, err := mw.CreateFormFile(field, filepath.Base(name))
				if err != nil {
					return err
				}

				if _, err = io.Copy(part, f); err != nil {
					return err
				}
			}

			if password != "" {
				if err := mw.WriteField("password", password); err != nil {
					return err
				}
			}

			return nil
		}(); err != nil {
			_ = mw.Close()
			_ = pw.CloseWithError(err)
			return
		}

		_ = mw.Close()
		_ = pw.Close()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base.JoinPath("/api/v1/sign").String(), pr)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusCreated {
		body := map[string]string{}
		if err = json.NewDecoder(res.Body).Decode(&body); err == nil {
			if body["error"] != "" {
				return nil, fmt.Errorf("http status code %d: %s", res.StatusCode, body["error"])
			}
		}

		return nil, fmt.Errorf("http status code %d", res.StatusCode)
	}

	app := &SignedApp{}
	if err = json.NewDecoder(res.Body).Decode(app); err != nil {
		return nil, err
	}

	return app, ValidateSignedApp(app)
}

func (c *Client) Readyz(ctx context.Context) error {
	return c.getOK(ctx, "/readyz")
}

func (c *Client) Healthz(ctx context.Context) error {
	return c.getOK(ctx, "/healthz")
}

func (c *Client) getOK(ctx context.Context, path string) error {
	if err := c.init(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base.JoinPath(path).String(), nil)
	if err != nil {
		return err
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("http status code %d", res.StatusCode)
	}

	return nil
}
