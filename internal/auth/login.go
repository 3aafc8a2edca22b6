// Package auth builds the sign-in link shown on the storefront. The link is
// decorative: no session is ever checked.
package auth

import (
	"encoding/base64"
	"net/url"

	"github.com/takayama/storefront/internal/logger"
)

const (
	DefaultPortalURL = "https://auth.manus.im"
	DefaultAppID     = "default"
)

// LoginURL returns <portal>/app-auth with the app ID, the redirect URI, a
// state carrying the base64 redirect URI and type=signIn. Empty arguments
// fall back to the defaults. An unusable portal yields "#".
func LoginURL(portalURL, appID, redirectURI string) string {
	if portalURL == "" {
		portalURL = DefaultPortalURL
	}
	if appID == "" {
		appID = DefaultAppID
	}

	base, err := url.Parse(portalURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		logger.Warn("auth: failed to build login URL from %q: %v", portalURL, err)
		return "#"
	}

	u := base.ResolveReference(&url.URL{Path: "/app-auth"})
	q := url.Values{}
	q.Set("appId", appID)
	q.Set("redirectUri", redirectURI)
	q.Set("state", base64.StdEncoding.EncodeToString([]byte(redirectURI)))
	q.Set("type", "signIn")
	u.RawQuery = q.Encode()
	return u.String()
}
