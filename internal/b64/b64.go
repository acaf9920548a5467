// Package b64 decodes base64 payloads embedded in data: URIs and GLB
// buffers, following spec.md §4.B: a SIMD-accelerated fast path with a
// portable fallback that must produce byte-identical output.
package b64

import (
	"encoding/base64"

	"github.com/cloudwego/base64x"
	"github.com/klauspost/cpuid/v2"

	"github.com/ferrite3d/gltfkit/internal/glog"
)

// DecodeFunc is the host-override hook: a host can hand the core a
// thread-pool-backed decoder that takes the whole encoded string and
// returns the decoded bytes, replacing the built-in dispatch.
type DecodeFunc func(encoded string) ([]byte, error)

var override DecodeFunc

// SetDecodeFunc installs a host-supplied decoder, or clears it when fn
// is nil. Intended for hosts that want to split a large encoded buffer
// into 4-byte-aligned chunks and decode them across a worker pool.
func SetDecodeFunc(fn DecodeFunc) {
	override = fn
}

var simdCapable = cpuid.CPU.Supports(cpuid.AVX2) || cpuid.CPU.Supports(cpuid.SSE41)

// Decode allocates and returns the decoded bytes of a standard-alphabet
// base64 string whose length must be a multiple of 4.
func Decode(encoded string) ([]byte, error) {
	if override != nil {
		return override(encoded)
	}
	if len(encoded)%4 != 0 {
		return nil, errLength
	}
	if simdCapable {
		out, err := base64x.StdEncoding.DecodeString(encoded)
		if err == nil {
			return out, nil
		}
		glog.Warn("b64: SIMD decode failed (%v), falling back to portable path", err)
	}
	return base64.StdEncoding.DecodeString(encoded)
}

// DecodeInto decodes encoded into dst, which must already be sized to
// hold exactly the decoded length (spec.md §4.B in-place variant).
func DecodeInto(encoded string, dst []byte) (int, error) {
	want := DecodedLen(encoded)
	if len(dst) < want {
		return 0, errBufferTooSmall
	}
	if simdCapable {
		n, err := base64x.StdEncoding.Decode(dst, []byte(encoded))
		if err == nil {
			return n, nil
		}
		glog.Warn("b64: SIMD in-place decode failed (%v), falling back", err)
	}
	return base64.StdEncoding.Decode(dst, []byte(encoded))
}

// Encode returns the standard-alphabet base64 encoding of data, used
// when EncodeJSON inlines a resolved buffer or image as a data URI.
func Encode(data []byte) string {
	if simdCapable {
		return base64x.StdEncoding.EncodeToString(data)
	}
	return base64.StdEncoding.EncodeToString(data)
}

// DecodedLen returns the exact decoded byte length of encoded, counting
// trailing '=' padding characters (0, 1 or 2).
func DecodedLen(encoded string) int {
	n := len(encoded)
	if n == 0 {
		return 0
	}
	padding := 0
	for i := n - 1; i >= 0 && i >= n-2 && encoded[i] == '='; i-- {
		padding++
	}
	return (n/4)*3 - padding
}

var (
	errLength         = decodeError("input length must be a multiple of 4")
	errBufferTooSmall = decodeError("destination buffer too small")
)

type decodeError string

func (e decodeError) Error() string { return "b64: " + string(e) }
