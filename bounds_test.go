package gltfkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundsKindForMatchesComponentType(t *testing.T) {
	assert.Equal(t, BoundsFloat64, BoundsKindFor(ComponentFloat))
	assert.Equal(t, BoundsFloat64, BoundsKindFor(ComponentDouble))
	assert.Equal(t, BoundsInt64, BoundsKindFor(ComponentUnsignedShort))
	assert.Equal(t, BoundsInt64, BoundsKindFor(ComponentByte))
}

func TestAccessorBoundsArrayJSONRoundTrip(t *testing.T) {
	b := boundsFromJSON([]float64{1, 2, 3}, ComponentFloat)
	assert.Equal(t, BoundsFloat64, b.Kind)
	assert.Equal(t, []float64{1, 2, 3}, b.ToJSON())

	b = boundsFromJSON([]float64{1, 2, 3}, ComponentUnsignedShort)
	assert.Equal(t, BoundsInt64, b.Kind)
	assert.Equal(t, []int64{1, 2, 3}, b.Ints)
	assert.Equal(t, []float64{1, 2, 3}, b.ToJSON())
}

func TestAccessorBoundsArrayUpdateWidensAndNarrows(t *testing.T) {
	max := NewAccessorBoundsArray(BoundsFloat64, 3)
	max.UpdateVector([]float64{1, -1, 0}, true)
	max.UpdateVector([]float64{0, 2, -5}, true)
	assert.Equal(t, []float64{1, 2, 0}, max.Floats)

	min := &AccessorBoundsArray{Kind: BoundsInt64, Ints: []int64{5, 5}}
	min.UpdateVector([]float64{5, 9}, false)
	min.UpdateVector([]float64{-3, 9}, false)
	assert.Equal(t, []int64{-3, 5}, min.Ints)
}

func TestValidateRejectsMismatchedBoundsStorageKind(t *testing.T) {
	asset := &Asset{
		Metadata: Metadata{Version: "2.0"},
		Accessors: []Accessor{{
			BufferView: NoIndex, Type: TypeVec3, ComponentType: ComponentFloat,
			Min: &AccessorBoundsArray{Kind: BoundsFloat64, Floats: []float64{0, 0, 0}},
			Max: &AccessorBoundsArray{Kind: BoundsInt64, Ints: []int64{1, 1, 1}},
		}},
	}
	err := Validate(asset)
	assert.ErrorIs(t, err, InvalidGltf)
}

func TestValidateRejectsWrongBoundsLength(t *testing.T) {
	asset := &Asset{
		Metadata: Metadata{Version: "2.0"},
		Accessors: []Accessor{{
			BufferView: NoIndex, Type: TypeVec3, ComponentType: ComponentFloat,
			Max: &AccessorBoundsArray{Kind: BoundsFloat64, Floats: []float64{1, 1}},
		}},
	}
	err := Validate(asset)
	assert.ErrorIs(t, err, InvalidGltf)
}
