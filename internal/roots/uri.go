package roots

import (
	"strings"

	"github.com/fpt/scopefs/internal/pathutil"
)

// ParseRootURI converts an MCP root specification (a file:// URI or a plain
// directory path) into a candidate path for Registry.Replace. It returns
// false for URI schemes other than file.
func ParseRootURI(uri string) (string, bool) {
	raw := uri
	if strings.HasPrefix(raw, "file://") {
		raw = strings.TrimPrefix(raw, "file://")
		// file://localhost/path is equivalent to file:///path
		raw = strings.TrimPrefix(raw, "localhost")
	} else if i := strings.Index(raw, "://"); i >= 0 {
		return "", false
	}
	if raw == "" {
		return "", false
	}

	normalized, err := pathutil.Normalize(raw)
	if err != nil {
		return "", false
	}
	return normalized, true
}

// CandidatesFromURIs maps root URIs to candidate paths, dropping entries that
// cannot be parsed. Validation of the surviving candidates (existence,
// directory-ness, symlink resolution) happens in Registry.Replace.
func CandidatesFromURIs(uris []string) []string {
	out := make([]string, 0, len(uris))
	for _, uri := range uris {
		if p, ok := ParseRootURI(uri); ok {
			out = append(out, p)
		}
	}
	return out
}
