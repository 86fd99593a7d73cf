// Package drive rewrites Google Drive sharing links into directly embeddable
// image URLs. Content editors paste whatever the Drive UI hands them, so the
// normalizer accepts every historical sharing shape and fails open: a string
// it cannot interpret passes through untouched.
package drive

import (
	"regexp"
	"strings"
)

const (
	directViewPrefix = "https://drive.google.com/uc?export=view&id="

	// Bare file ids are short and slash-free; anything longer is assumed to
	// be a URL we failed to parse.
	bareIDMaxLen = 100
)

var (
	filePathPattern = regexp.MustCompile(`/file/d/([^/]+)`)
	idParamPattern  = regexp.MustCompile(`[?&]id=([^&]+)`)
)

// NormalizeImageURL converts Drive sharing links to the canonical direct-view
// form. Already-direct URLs, googleusercontent-hosted images, and non-Drive
// URLs are returned unchanged. Idempotent for any input.
func NormalizeImageURL(url string) string {
	if url == "" {
		return ""
	}

	if strings.Contains(url, "drive.google.com/uc?export=view") ||
		strings.Contains(url, "lh3.googleusercontent.com") {
		return url
	}

	// Anything that reads as a URL but is not a Drive link (Unsplash, a CDN,
	// ...) passes through. Slash-free short tokens fall through and are
	// treated as bare file ids below.
	if !strings.Contains(url, "drive.google.com") && strings.Contains(url, "/") {
		return url
	}

	fileID := ""
	if m := filePathPattern.FindStringSubmatch(url); m != nil {
		fileID = m[1]
	}
	if m := idParamPattern.FindStringSubmatch(url); m != nil {
		fileID = m[1]
	}
	if fileID == "" && len(url) < bareIDMaxLen && !strings.Contains(url, "/") {
		fileID = url
	}

	if fileID != "" {
		return directViewPrefix + fileID
	}
	return url
}
