package gltfkit

// BoundsKind discriminates which native type an AccessorBoundsArray stores,
// spec.md §3.3: "storage kind is float64 iff componentType ∈ {Float, Double},
// else int64".
type BoundsKind int

const (
	BoundsInt64 BoundsKind = iota
	BoundsFloat64
)

// BoundsKindFor returns the storage kind an accessor's min/max bounds must
// use for the given componentType.
func BoundsKindFor(ct ComponentType) BoundsKind {
	if ct == ComponentFloat || ct == ComponentDouble {
		return BoundsFloat64
	}
	return BoundsInt64
}

// AccessorBoundsArray is spec.md §4.E's AccessorBoundsArray: an accessor's
// min or max bounds, holding componentCount(accessor.Type) elements of
// either int64 or float64 depending on the owning accessor's componentType.
// The discriminator is checked on every accessor (spec.md §4.E), not just
// trusted from construction.
type AccessorBoundsArray struct {
	Kind   BoundsKind
	Ints   []int64
	Floats []float64
}

// NewAccessorBoundsArray allocates an AccessorBoundsArray of n elements for
// the given storage kind, zero-valued.
func NewAccessorBoundsArray(kind BoundsKind, n int) *AccessorBoundsArray {
	b := &AccessorBoundsArray{Kind: kind}
	if kind == BoundsFloat64 {
		b.Floats = make([]float64, n)
	} else {
		b.Ints = make([]int64, n)
	}
	return b
}

// boundsFromJSON converts a JSON-decoded []float64 (the only numeric shape
// encoding/json-compatible decoders produce) into the storage kind the
// accessor's componentType requires.
func boundsFromJSON(vals []float64, ct ComponentType) *AccessorBoundsArray {
	if vals == nil {
		return nil
	}
	b := &AccessorBoundsArray{Kind: BoundsKindFor(ct)}
	if b.Kind == BoundsFloat64 {
		b.Floats = append([]float64(nil), vals...)
	} else {
		b.Ints = make([]int64, len(vals))
		for i, v := range vals {
			b.Ints[i] = int64(v)
		}
	}
	return b
}

// Len returns the number of stored components.
func (b *AccessorBoundsArray) Len() int {
	if b == nil {
		return 0
	}
	if b.Kind == BoundsFloat64 {
		return len(b.Floats)
	}
	return len(b.Ints)
}

// At widens to float64 for comparison regardless of storage kind.
func (b *AccessorBoundsArray) At(i int) float64 {
	if b.Kind == BoundsFloat64 {
		return b.Floats[i]
	}
	return float64(b.Ints[i])
}

// ToJSON widens the stored bounds to []float64 for JSON encoding, the
// inverse of boundsFromJSON.
func (b *AccessorBoundsArray) ToJSON() []float64 {
	if b == nil {
		return nil
	}
	if b.Kind == BoundsFloat64 {
		return b.Floats
	}
	out := make([]float64, len(b.Ints))
	for i, v := range b.Ints {
		out[i] = float64(v)
	}
	return out
}

// UpdateComponent widens (keepGreater) or narrows (!keepGreater) the j'th
// stored extreme to include v, spec.md §4.E's "update helper: given a single
// component or a vector, widen or narrow per-component extremes".
func (b *AccessorBoundsArray) UpdateComponent(j int, v float64, keepGreater bool) {
	if b.Kind == BoundsFloat64 {
		if keepGreater == (v > b.Floats[j]) {
			b.Floats[j] = v
		}
		return
	}
	iv := int64(v)
	if keepGreater == (iv > b.Ints[j]) {
		b.Ints[j] = iv
	}
}

// UpdateVector applies UpdateComponent across every component of v.
func (b *AccessorBoundsArray) UpdateVector(v []float64, keepGreater bool) {
	for j, c := range v {
		b.UpdateComponent(j, c, keepGreater)
	}
}
