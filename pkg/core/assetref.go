package core

import (
	"fmt"
	"regexp"
	"strings"
)

// Scheme is the URI scheme used for asset references embedded in note
// content. The desktop shell registers it as a privileged content-loading
// scheme so renderers can fetch assets directly.
const Scheme = "inkpad"

// refPattern matches asset-reference tokens embedded in free text.
// Conservative by design: anything that looks like a reference protects the
// underlying asset from garbage collection.
var refPattern = regexp.MustCompile(Scheme + `://[A-Za-z0-9._-]+`)

// AssetRef builds the canonical reference string for a stored asset file.
func AssetRef(filename string) string {
	return Scheme + "://" + filename
}

// BareFilename resolves an asset reference to the bare filename stored on
// disk. It strips any URI scheme, host, query string, fragment and trailing
// slashes a backend may have added. This is the single place reference
// parsing happens; call sites must not reimplement it.
func BareFilename(ref string) (string, error) {
	s := strings.TrimSpace(ref)
	if s == "" {
		return "", fmt.Errorf("%w: empty reference", ErrBadReference)
	}

	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimRight(s, "/")

	// Keep only the last path segment. Mobile backends return full device
	// paths (e.g. http://localhost/_files_/data/<name>), desktop returns
	// inkpad://<name>; both collapse to the stored filename.
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}

	if s == "" || s == "." || s == ".." || strings.ContainsAny(s, `\`) {
		return "", fmt.Errorf("%w: %q", ErrBadReference, ref)
	}
	return s, nil
}

// ScanRefs extracts the bare filenames of every asset-reference token found
// in free text. Malformed tokens are skipped.
func ScanRefs(text string) []string {
	var out []string
	for _, m := range refPattern.FindAllString(text, -1) {
		name, err := BareFilename(m)
		if err != nil {
			continue
		}
		out = append(out, name)
	}
	return out
}
