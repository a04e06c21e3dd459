package account

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
)

// countsAsOutage reports whether err should move the breaker towards open.
// Token rejections never do.
func countsAsOutage(err error) bool {
	return errors.Is(err, errTransient)
}

// principalCacheKey never embeds the raw bearer token.
func principalCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "principal:" + hex.EncodeToString(sum[:])
}

// introspectEndpoint resolves path against baseURL. An absolute path wins.
func introspectEndpoint(baseURL, path string) string {
	baseURL = strings.TrimSpace(baseURL)
	path = strings.TrimSpace(path)
	if path == "" {
		return strings.TrimSuffix(baseURL, "/")
	}
	if ref, err := url.Parse(path); err == nil && ref.IsAbs() {
		return path
	}

	joined, err := url.JoinPath(baseURL, path)
	if err != nil {
		return strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(path, "/")
	}
	return joined
}
