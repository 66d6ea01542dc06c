package ios

import (
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"strings"
	"time"

	"software.sslmate.com/src/go-pkcs12"
)

// Identity is the signing certificate held in a .p12.
type Identity struct {
	Certificate *x509.Certificate
}

func DecodeIdentity(b []byte, password string) (*Identity, error) {
	_, cert, _, err := pkcs12.DecodeChain(b, password)
	if err != nil {
		return nil, err
	}

	return &Identity{Certificate: cert}, nil
}

func (i *Identity) CommonName() string {
	return i.Certificate.Subject.CommonName
}

func (i *Identity) NotAfter() time.Time {
	return i.Certificate.NotAfter
}

// SHA256Fingerprint returns the colon-separated uppercase hex
// SHA-256 digest of the certificate.
func (i *Identity) SHA256Fingerprint() string {
	var (
		sum   = sha256.Sum256(i.Certificate.Raw)
		hx    = strings.ToUpper(hex.EncodeToString(sum[:]))
		pairs = make([]string, 0, len(hx)/2)
	)
	for j := 0; j < len(hx); j += 2 {
		pairs = append(pairs, hx[j:j+2])
	}

	return strings.Join(pairs, ":")
}
