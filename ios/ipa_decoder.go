package ios

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"howett.net/plist"
)

const (
	InfoPlistName = "Info.plist"
	PayloadName   = "Payload"
	AppExt        = ".app"
)

var (
	// ErrNotArchive indicates the .ipa is not a readable zip.
	ErrNotArchive = fmt.Errorf("not a zip archive")
	// ErrInfoNotFound indicates the .ipa has no Payload/*.app/Info.plist.
	ErrInfoNotFound = fmt.Errorf("%s/*%s/%s not found in .ipa", PayloadName, AppExt, InfoPlistName)
)

type IPADecoder struct {
	Name string

	info *Info
}

func NewIPADecoder(name string) *IPADecoder {
	return &IPADecoder{Name: name}
}

func (i *IPADecoder) zipReader() (*zip.Reader, error) {
	ipa, err := os.Open(i.Name)
	if err != nil {
		return nil, err
	}

	ipafi, err := ipa.Stat()
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(ipa, ipafi.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotArchive, err)
	}

	return zr, nil
}

// isAppInfoPlist reports whether name is the application bundle's
// metadata file, i.e. Payload/<app>.app/Info.plist. Info.plists of
// nested bundles such as Frameworks/ do not match.
func isAppInfoPlist(name string) bool {
	parts := strings.Split(path.Clean(name), "/")

	return len(parts) == 3 &&
		parts[0] == PayloadName &&
		strings.EqualFold(path.Ext(parts[1]), AppExt) &&
		strings.EqualFold(parts[2], InfoPlistName)
}

func (i *IPADecoder) infoFromZipReader(zr *zip.Reader) (*Info, error) {
	for _, zf := range zr.File {
		if isAppInfoPlist(zf.Name) {
			fsf, err := zr.Open(zf.Name)
			if err != nil {
				return nil, err
			}

			b, err := io.ReadAll(fsf)
			if err != nil {
				return nil, err
			}

			i.info = &Info{}
			return i.info, plist.NewDecoder(bytes.NewReader(b)).Decode(i.info)
		}
	}

	return nil, ErrInfoNotFound
}

func (i *IPADecoder) Info(_ context.Context) (*Info, error) {
	if i.info != nil {
		return i.info, nil
	}

	zr, err := i.zipReader()
	if err != nil {
		return nil, err
	}

	return i.infoFromZipReader(zr)
}

func (i *IPADecoder) Close() error {
	i.info = nil
	return nil
}
