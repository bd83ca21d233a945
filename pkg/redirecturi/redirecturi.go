// Package redirecturi selects the OAuth redirect URI registered for this
// deployment from the client's configured redirect URI list.
//
// Selection rules, in order:
//  1. An explicit override always wins.
//  2. Candidates are URIs ending in "{base_path}/login/google/authorized".
//  3. In development, localhost candidates are preferred; in production,
//     HTTPS non-localhost candidates are preferred.
//  4. With no candidates, the first configured URI is used as-is.
package redirecturi

import (
	"net/url"
	"strings"
)

// Select picks the redirect URI for the deployment. dev selects the
// localhost-preferring branch. Returns "" only when uris is empty and no
// override is given.
func Select(uris []string, basePath, override string, dev bool) string {
	if override != "" {
		return override
	}

	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	suffix := basePath + "/login/google/authorized"

	var candidates []string
	for _, u := range uris {
		if strings.HasSuffix(strings.TrimRight(u, "/"), suffix) {
			candidates = append(candidates, u)
		}
	}

	if len(candidates) == 0 {
		if len(uris) > 0 {
			return uris[0]
		}
		return ""
	}

	if dev {
		for _, u := range candidates {
			if isLocal(u) {
				return u
			}
		}
		return candidates[0]
	}

	for _, u := range candidates {
		if strings.HasPrefix(u, "https://") && !isLocal(u) {
			return u
		}
	}
	return candidates[0]
}

func isLocal(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == "localhost" || host == "127.0.0.1"
}
