package fingerprint

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/avct/uasurfer"
)

// Fingerprint identifies a client for rate limiting and security logging:
// the forwarded IP plus a coarse user-agent classification.
type Fingerprint struct {
	IP         string
	Browser    string
	DeviceType string
}

// New classifies the raw user agent with uasurfer. An empty user agent is
// kept as "unknown" rather than rejected; bots identify themselves or not.
func New(ip, userAgent string) Fingerprint {
	f := Fingerprint{IP: ip, Browser: "unknown", DeviceType: "unknown"}
	if userAgent == "" {
		return f
	}
	ua := uasurfer.Parse(userAgent)
	f.Browser = strings.TrimPrefix(ua.Browser.Name.String(), "Browser")
	f.DeviceType = strings.TrimPrefix(ua.DeviceType.String(), "Device")
	return f
}

func (f Fingerprint) ID() string {
	raw := f.IP + "|" + f.Browser + "|" + f.DeviceType
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func FromID(id string) (*Fingerprint, error) {
	decoded, err := base64.StdEncoding.DecodeString(id)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(string(decoded), "|")
	if len(parts) != 3 {
		return nil, errors.New("invalid fingerprint ID format")
	}
	return &Fingerprint{
		IP:         parts[0],
		Browser:    parts[1],
		DeviceType: parts[2],
	}, nil
}
