package gltfkit

import "math"

// indexSentinel marks an OptIndex as unset, matching glTF's convention
// that indices are non-negative and 0xFFFFFFFF never occurs in a valid
// document.
const indexSentinel = math.MaxUint32

// OptIndex is an optional uint32 index into a document array, packed
// without a separate bool by reserving MaxUint32 as "unset".
type OptIndex uint32

// NoIndex is the unset OptIndex value.
const NoIndex OptIndex = indexSentinel

// Some reports whether the index is set.
func (o OptIndex) Some() bool { return o != indexSentinel }

// Get returns the index and whether it was set.
func (o OptIndex) Get() (uint32, bool) { return uint32(o), o.Some() }

// OptFloat64 is an optional float64, packed by reserving a quiet NaN as
// "unset" rather than carrying a separate bool.
type OptFloat64 float64

// NoFloat64 is the unset OptFloat64 value.
var NoFloat64 = OptFloat64(math.NaN())

// Some reports whether the value is set: any non-NaN float64. Every NaN,
// quiet or signalling, reads as unset; an input document can never
// legally contain one.
func (o OptFloat64) Some() bool { return !math.IsNaN(float64(o)) }

// Get returns the value and whether it was set.
func (o OptFloat64) Get() (float64, bool) { return float64(o), o.Some() }
