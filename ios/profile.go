package ios

import (
	"fmt"
	"time"

	"go.mozilla.org/pkcs7"
	"howett.net/plist"
)

// Profile is the plist payload of a .mobileprovision, which is
// a CMS (PKCS#7) signed container.
type Profile struct {
	Name                 string    `plist:"Name"`
	TeamName             string    `plist:"TeamName"`
	TeamIdentifier       []string  `plist:"TeamIdentifier"`
	AppIDName            string    `plist:"AppIDName"`
	ProvisionedDevices   []string  `plist:"ProvisionedDevices"`
	ProvisionsAllDevices bool      `plist:"ProvisionsAllDevices"`
	CreationDate         time.Time `plist:"CreationDate"`
	ExpirationDate       time.Time `plist:"ExpirationDate"`
	UUID                 string    `plist:"UUID"`
	Platform             []string  `plist:"Platform"`
}

func DecodeProfile(b []byte) (*Profile, error) {
	p7, err := pkcs7.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse pkcs7 container: %w", err)
	}

	profile := &Profile{}
	if _, err = plist.Unmarshal(p7.Content, profile); err != nil {
		return nil, fmt.Errorf("parse profile plist: %w", err)
	}

	return profile, nil
}

func (p *Profile) TeamID() string {
	if len(p.TeamIdentifier) > 0 {
		return p.TeamIdentifier[0]
	}

	return ""
}

func (p *Profile) Expired() bool {
	return time.Now().After(p.ExpirationDate)
}
