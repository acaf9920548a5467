package gltfkit

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float32Bytes(values ...float32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func assetWithBuffer(data []byte) *Asset {
	return &Asset{
		Buffers: []Buffer{{Source: NewArrayDataSource(data, ""), ByteLength: len(data)}},
	}
}

func TestCopyFromFloat32Positions(t *testing.T) {
	data := float32Bytes(0, 0, 0, 1, 0, 0, 0, 1, 0)
	asset := assetWithBuffer(data)
	asset.BufferViews = []BufferView{{Buffer: 0, ByteOffset: 0, ByteLength: len(data)}}
	asset.Accessors = []Accessor{{
		BufferView: OptIndex(0), ComponentType: ComponentFloat, Count: 3, Type: TypeVec3,
	}}

	out, err := CopyFrom[float32](asset, &asset.Accessors[0])
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0}, out)
}

func TestGetElementHonorsByteStride(t *testing.T) {
	// Two interleaved VEC3 positions + VEC3 normals, stride 24 bytes.
	data := float32Bytes(
		1, 2, 3 /* pos0 */, 9, 9, 9, /* normal0 */
		4, 5, 6 /* pos1 */, 8, 8, 8, /* normal1 */
	)
	asset := assetWithBuffer(data)
	asset.BufferViews = []BufferView{{Buffer: 0, ByteOffset: 0, ByteLength: len(data), ByteStride: OptIndex(24)}}
	asset.Accessors = []Accessor{{
		BufferView: OptIndex(0), ByteOffset: 0, ComponentType: ComponentFloat, Count: 2, Type: TypeVec3,
	}}

	scratch := make([]float32, 3)
	require.NoError(t, GetElement(asset, &asset.Accessors[0], 1, scratch))
	assert.Equal(t, []float32{4, 5, 6}, scratch)
}

func TestGetElementAppliesSparseOverlay(t *testing.T) {
	base := float32Bytes(0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0) // 4 VEC3 zeros
	overlayIdx := []byte{0, 0, 0, 2} // uint32 index 2, big-ish but we use little endian below
	binary.LittleEndian.PutUint32(overlayIdx, 2)
	overlayVal := float32Bytes(10, 20, 30)

	asset := &Asset{
		Buffers: []Buffer{
			{Source: NewArrayDataSource(base, "")},
			{Source: NewArrayDataSource(overlayIdx, "")},
			{Source: NewArrayDataSource(overlayVal, "")},
		},
	}
	asset.BufferViews = []BufferView{
		{Buffer: 0, ByteOffset: 0, ByteLength: len(base)},
		{Buffer: 1, ByteOffset: 0, ByteLength: len(overlayIdx)},
		{Buffer: 2, ByteOffset: 0, ByteLength: len(overlayVal)},
	}
	asset.Accessors = []Accessor{{
		BufferView: OptIndex(0), ComponentType: ComponentFloat, Count: 4, Type: TypeVec3,
		Sparse: &Sparse{
			Count: 1, IndicesView: 1, IndicesType: ComponentUnsignedInt,
			ValuesView: 2,
		},
	}}

	scratch := make([]float32, 3)
	require.NoError(t, GetElement(asset, &asset.Accessors[0], 2, scratch))
	assert.Equal(t, []float32{10, 20, 30}, scratch)

	require.NoError(t, GetElement(asset, &asset.Accessors[0], 0, scratch))
	assert.Equal(t, []float32{0, 0, 0}, scratch)
}

func TestDecodeOneComponentNormalizedByte(t *testing.T) {
	v := decodeOneComponent([]byte{255}, ComponentUnsignedByte, true)
	assert.InDelta(t, 1.0, v, 1e-9)
	v2 := decodeOneComponent([]byte{0}, ComponentUnsignedByte, true)
	assert.InDelta(t, 0.0, v2, 1e-9)
}
