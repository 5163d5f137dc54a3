package metadata

import (
	"net"
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"github.com/ustwan/tzr-host-api-sub001/pkg/requestcontext"
)

// MaxXFFHeaderLength is the maximum allowed length for X-Forwarded-For header
// to prevent header injection attacks.
const MaxXFFHeaderLength = 500

// Middleware extracts client IP address and User-Agent from the request
// and adds them to the context for use by handlers and services.
type Middleware struct {
	// TrustXFF controls whether X-Forwarded-For is honored. Only enable
	// behind a proxy that strips client-supplied values.
	TrustXFF bool
}

// Handler wraps next with metadata extraction.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := m.extractClientIP(r)
		ua := r.Header.Get("User-Agent")

		ctx := requestcontext.WithClientMetadata(r.Context(), ip, ua)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) extractClientIP(r *http.Request) string {
	remoteIP := parseRemoteAddr(r.RemoteAddr)
	if !m.TrustXFF {
		return remoteIP
	}

	xff := r.Header.Get("X-Forwarded-For")
	if xff == "" || len(xff) > MaxXFFHeaderLength {
		return remoteIP
	}
	// First hop is the original client.
	parts := strings.Split(xff, ",")
	candidate := strings.TrimSpace(parts[0])
	if net.ParseIP(candidate) == nil {
		return remoteIP
	}
	return candidate
}

func parseRemoteAddr(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// Device summarizes the client platform parsed from a User-Agent string.
// Used for audit enrichment; empty fields mean the header was absent or
// unrecognized.
type Device struct {
	Platform string
	OS       string
	Browser  string
	Mobile   bool
	Bot      bool
}

// ParseDevice parses a raw User-Agent header into a Device summary.
func ParseDevice(rawUA string) Device {
	if rawUA == "" {
		return Device{}
	}
	ua := useragent.New(rawUA)
	name, _ := ua.Browser()
	return Device{
		Platform: ua.Platform(),
		OS:       ua.OS(),
		Browser:  name,
		Mobile:   ua.Mobile(),
		Bot:      ua.Bot(),
	}
}
