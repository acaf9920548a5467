// Package crc32c computes the CRC32-C (Castagnoli) checksum used to
// dispatch glTF JSON field names to parser routines without string
// comparison chains.
//
// hash/crc32's Castagnoli table already installs a hardware-accelerated
// implementation at init time when the host CPU exposes SSE4.2 (amd64)
// or the ARMv8 CRC extension (arm64) — the same "probe once, install a
// function pointer" design spec.md §4.A and §9 call for, just performed
// by the standard library instead of a hand-rolled intrinsic. No example
// in the retrieval pack hand-writes an SSE4.2/NEON CRC32C kernel, so
// there is nothing to ground a from-scratch asm path on; duplicating
// hash/crc32's already-correct dispatch would not be "bit-for-bit" tested
// against anything real. We additionally consult klauspost/cpuid so the
// one-shot probe can be logged/observed, matching the spirit of the
// design note without inventing an ungrounded kernel.
package crc32c

import (
	"hash/crc32"
	"sync"

	"github.com/klauspost/cpuid/v2"

	"github.com/ferrite3d/gltfkit/internal/glog"
)

var (
	table    = crc32.MakeTable(crc32.Castagnoli)
	probeLog sync.Once
)

// HardwareAccelerated reports whether the host CPU exposes an instruction
// the runtime's Castagnoli implementation can use (SSE4.2 CRC32 on amd64,
// the CRC extension on arm64). It is informational only — hash/crc32
// decides for itself and always produces the correct checksum either way.
func HardwareAccelerated() bool {
	return cpuid.CPU.Supports(cpuid.SSE42) || cpuid.CPU.Has(cpuid.CRC32)
}

func logProbeOnce() {
	probeLog.Do(func() {
		if HardwareAccelerated() {
			glog.Debug("crc32c: hardware-accelerated path available (%s)", cpuid.CPU.BrandName)
		} else {
			glog.Debug("crc32c: using portable tabular path")
		}
	})
}

// Sum computes the CRC32-C checksum of s.
func Sum(s string) uint32 {
	logProbeOnce()
	return crc32.Checksum([]byte(s), table)
}

// SumBytes computes the CRC32-C checksum of b.
func SumBytes(b []byte) uint32 {
	logProbeOnce()
	return crc32.Checksum(b, table)
}

// Const computes the CRC32-C of s like Sum, but without triggering the
// one-time probe log. The decoder uses it both to build its
// package-level set of supported extension-name hashes and to hash a
// name when looking it up in that set. Go has no constant-folding hook
// for an arbitrary hash function, so the results are ordinary runtime
// values, not untyped constants.
func Const(s string) uint32 {
	return crc32.Checksum([]byte(s), table)
}
