package utils

import (
	"path"
	"regexp"
	"strings"
)

// Storefront image URLs carry a scaled-down variant marker such as _352x192
// directly before the extension; stripping it yields the full-resolution
// asset. The match is anchored to the extension so numeric segments earlier
// in the filename are left alone.
var resolutionSuffix = regexp.MustCompile(`_\d{2,5}x\d{2,5}(\.[A-Za-z]+)$`)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// StripResolutionSuffix removes a trailing _WxH resolution marker from an
// image URL, preserving any query string. URLs without the marker are
// returned unchanged.
func StripResolutionSuffix(rawURL string) string {
	base, query, hasQuery := strings.Cut(rawURL, "?")
	base = resolutionSuffix.ReplaceAllString(base, "$1")
	if hasQuery {
		return base + "?" + query
	}
	return base
}

// SanitizeFilename strips any query component, discards directory components
// and replaces characters unsafe for filesystems with underscores. The
// result contains no separators, so applying it twice is a no-op.
func SanitizeFilename(name string) string {
	name, _, _ = strings.Cut(name, "?")
	name = path.Base(name)
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// ImageFilename derives the local filename for an image URL: sanitize the
// full-resolution URL, then strip the resolution marker once more in case
// sanitization reassembled one in front of the extension.
func ImageFilename(rawURL string) string {
	return StripResolutionSuffix(SanitizeFilename(StripResolutionSuffix(rawURL)))
}
