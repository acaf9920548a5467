// Package uriutil implements the RFC-3986 URI handling glTF buffers and
// images need: recognizing data: URIs, telling a local filesystem path
// from a remote one, and resolving a relative path against a base
// directory. It wraps github.com/fredbi/uri for the borrowed-view parse
// and layers the owning, percent-decoding variant spec.md §4.C asks for
// on top, since fredbi/uri itself only exposes read-only views.
package uriutil

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/fredbi/uri"
)

// View is a non-owning, parsed look at a URI string: no allocation, no
// percent-decoding, suitable for the "peek" shape spec.md §4.C describes.
type View struct {
	raw    string
	parsed uri.URI
	valid  bool
}

// Parse parses raw as an RFC-3986 URI without copying or decoding it.
func Parse(raw string) View {
	p, err := uri.Parse(raw)
	if err != nil {
		return View{raw: raw, valid: raw != "" && !strings.HasPrefix(raw, ":")}
	}
	return View{raw: raw, parsed: p, valid: true}
}

// Valid reports whether raw was non-empty and, if it carried a scheme,
// that the scheme was non-empty (spec.md §4.C "valid" definition).
func (v View) Valid() bool { return v.valid }

// Scheme returns the URI scheme, or "" if none was present.
func (v View) Scheme() string {
	if v.parsed == nil {
		return ""
	}
	return v.parsed.Scheme()
}

// IsDataURI reports whether the URI uses the data: scheme.
func (v View) IsDataURI() bool {
	return strings.HasPrefix(v.raw, "data:")
}

// IsLocalPath reports whether the URI refers to the local filesystem:
// either no scheme at all, or scheme "file" with an empty host.
func (v View) IsLocalPath() bool {
	if v.IsDataURI() {
		return false
	}
	scheme := v.Scheme()
	if scheme == "" {
		return true
	}
	if scheme != "file" {
		return false
	}
	if v.parsed == nil {
		return true
	}
	return v.parsed.Authority().Host == ""
}

// String returns the original, unmodified URI text.
func (v View) String() string { return v.raw }

// Owned is the allocating, percent-decoding variant: it keeps its own
// percent-decoded copy of the URI text and its own path string rather
// than borrowing from the caller's buffer. It does not keep the query
// or fragment. Go strings are immutable, so an Owned value can be
// copied and passed by value freely.
type Owned struct {
	decoded string
	path    string
	isData  bool
	isLocal bool
}

// NewOwned parses and percent-decodes raw, returning an Owned URI.
func NewOwned(raw string) (Owned, error) {
	v := Parse(raw)
	o := Owned{isData: v.IsDataURI(), isLocal: v.IsLocalPath()}
	if o.isData {
		// Data URIs short-circuit after the scheme: the remainder is
		// the path, and must not be percent-decoded here since it is
		// itself a base64 or percent-encoded payload the caller decodes
		// with a dedicated codec.
		o.decoded = raw
		o.path = strings.TrimPrefix(raw, "data:")
		return o, nil
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return Owned{}, err
	}
	o.decoded = decoded
	if v.parsed != nil {
		o.path = v.parsed.Path()
	} else {
		o.path = decoded
	}
	return o, nil
}

// IsDataURI reports whether this URI uses the data: scheme.
func (o Owned) IsDataURI() bool { return o.isData }

// IsLocalPath reports whether this URI resolves to a local filesystem path.
func (o Owned) IsLocalPath() bool { return o.isLocal }

// Path returns the decoded path component.
func (o Owned) Path() string { return o.path }

// DataPayload returns the text following "data:" for a data URI,
// including its media-type/encoding prefix (e.g.
// "application/octet-stream;base64,AAA=").
func (o Owned) DataPayload() string { return o.path }

// Fspath resolves this URI's path against dir as a local filesystem
// path, matching spec.md §4.C's `fspath` helper.
func Fspath(dir string, o Owned) string {
	if filepath.IsAbs(o.path) {
		return o.path
	}
	return filepath.Join(dir, filepath.FromSlash(o.path))
}
