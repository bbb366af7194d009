// Package apiurl computes the books API base URL and endpoint URLs.
package apiurl

import (
	"os"
	"strings"
)

// Environment settings read by GetAPIBaseURL and BuildAPIURL.
const (
	EnvOrigin   = "BOOKSHELF_API_ORIGIN"
	EnvBasePath = "BOOKSHELF_API_BASE_PATH"
)

const (
	defaultOrigin   = ""
	defaultBasePath = "/api"
)

// Builder joins an API origin and base path. Empty fields fall back to the
// defaults: no origin (relative URLs) and the /api base path.
type Builder struct {
	Origin   string
	BasePath string
}

// FromEnv returns a Builder populated from the process environment.
func FromEnv() Builder {
	return Builder{
		Origin:   os.Getenv(EnvOrigin),
		BasePath: os.Getenv(EnvBasePath),
	}
}

// Base returns the normalized origin followed by the normalized base path.
func (b Builder) Base() string {
	origin := b.Origin
	if origin == "" {
		origin = defaultOrigin
	}
	basePath := b.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}
	return normalizeOrigin(origin) + normalizeBasePath(basePath)
}

// Resolve returns the full URL of path under Base. Leading slashes on path
// collapse to exactly one.
func (b Builder) Resolve(path string) string {
	return b.Base() + normalizePath(path)
}

// GetAPIBaseURL returns the base URL configured by the environment.
func GetAPIBaseURL() string {
	return FromEnv().Base()
}

// BuildAPIURL resolves path against the base URL configured by the environment.
func BuildAPIURL(path string) string {
	return FromEnv().Resolve(path)
}

func normalizeOrigin(origin string) string {
	return strings.TrimRight(strings.TrimSpace(origin), "/")
}

func normalizeBasePath(basePath string) string {
	sanitized := collapseSlashes(strings.Trim(strings.TrimSpace(basePath), "/"))
	if sanitized == "" {
		return ""
	}
	return "/" + sanitized
}

func normalizePath(path string) string {
	return "/" + collapseSlashes(strings.TrimLeft(path, "/"))
}

// collapseSlashes reduces every run of slashes in s to one.
func collapseSlashes(s string) string {
	if !strings.Contains(s, "//") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	prev := byte(0)
	for i := 0; i < len(s); i++ {
		if s[i] == '/' && prev == '/' {
			continue
		}
		prev = s[i]
		b.WriteByte(s[i])
	}
	return b.String()
}
