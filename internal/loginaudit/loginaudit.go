// internal/loginaudit/loginaudit.go
//
// Best-effort client metadata for login events.
//
// Context
// -------
// Every login attempt is logged with the parsed User-Agent and, when a
// MaxMind database is configured, a coarse geolocation of the client IP.
// The data is advisory only: it never gates authentication, and every
// lookup failure degrades to empty fields.  Passwords and connection
// strings never pass through this package.
//
// Notes
// -----
//   • All look-ups are read-only and pool-based, so the auditor is safe
//     under heavy concurrency.
//   • Oxford commas, two spaces after periods.
package loginaudit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"
)

// Info is what one login event records about the client.
type Info struct {
	IP         net.IP
	CountryISO string
	City       string
	Browser    string
	OS         string
	Device     string
	IsBot      bool
}

// Auditor parses request metadata.  Zero value works without geolocation.
type Auditor struct {
	geo *geoip2.Reader
}

// New opens the optional MaxMind database.  An empty path disables geo
// lookups; an unreadable file logs a warning and disables them too, so a
// stale mmdb never blocks logins.
func New(mmdbPath string) *Auditor {
	if mmdbPath == "" {
		return &Auditor{}
	}
	r, err := geoip2.Open(mmdbPath)
	if err != nil {
		zap.S().Warnw("geoip database unavailable", "path", mmdbPath, "err", err)
		return &Auditor{}
	}
	return &Auditor{geo: r}
}

// Close releases the MaxMind reader.
func (a *Auditor) Close() error {
	if a.geo == nil {
		return nil
	}
	return a.geo.Close()
}

// FromRequest collects UA and geo facts for one request.
func (a *Auditor) FromRequest(r *http.Request) Info {
	ua := uasurfer.Parse(r.UserAgent())
	info := Info{
		Browser: strings.TrimPrefix(ua.Browser.Name.String(), "Browser") +
			" " + versionString(ua.Browser.Version),
		OS:     strings.TrimPrefix(ua.OS.Name.String(), "OS"),
		Device: deviceString(ua.DeviceType),
		IsBot:  ua.IsBot(),
	}

	ip := clientIP(r)
	info.IP = ip
	if a.geo == nil || ip == nil {
		return info
	}
	rec, err := a.geo.City(ip)
	if err != nil {
		return info
	}
	info.CountryISO = rec.Country.IsoCode
	info.City = rec.City.Names["en"]
	return info
}

// versionString builds "major.minor" without forcing trailing zeros.
func versionString(v uasurfer.Version) string {
	if v.Major == 0 && v.Minor == 0 {
		return strconv.Itoa(v.Major)
	}
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// deviceString maps uasurfer.DeviceType to a user-friendly string.
func deviceString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceTV:
		return "TV"
	case uasurfer.DeviceConsole:
		return "Console"
	case uasurfer.DeviceWearable:
		return "Wearable"
	default:
		return "Unknown"
	}
}

// clientIP extracts the left-most address from X-Forwarded-For or
// X-Real-Ip, falling back to r.RemoteAddr ("ip:port").
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}
