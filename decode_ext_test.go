package gltfkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrite3d/gltfkit/bytesrc"
)

func TestDecodeMaterialClearcoatAndIOR(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},
		"extensionsUsed":["KHR_materials_clearcoat","KHR_materials_ior"],
		"materials":[{
			"extensions":{
				"KHR_materials_clearcoat":{"clearcoatFactor":0.5,"clearcoatRoughnessFactor":0.25},
				"KHR_materials_ior":{"ior":1.4}
			}
		}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, asset.Materials, 1)

	m := asset.Materials[0]
	require.NotNil(t, m.Clearcoat)
	assert.InDelta(t, 0.5, m.Clearcoat.ClearcoatFactor, 1e-9)
	assert.InDelta(t, 0.25, m.Clearcoat.ClearcoatRoughnessFactor, 1e-9)
	ior, ok := m.IOR.Get()
	require.True(t, ok)
	assert.InDelta(t, 1.4, ior, 1e-9)
	assert.False(t, m.Dispersion.Some())
}

func TestDecodeTextureTransform(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},
		"extensionsUsed":["KHR_texture_transform"],
		"materials":[{
			"pbrMetallicRoughness":{
				"baseColorTexture":{"index":0,"extensions":{"KHR_texture_transform":{"offset":[0.25,0.5],"scale":[2,2],"texCoord":1}}}
			}
		}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DecodeOptions{})
	require.NoError(t, err)

	tex := asset.Materials[0].PbrMetallicRoughness.BaseColorTexture
	require.NotNil(t, tex.Transform)
	assert.Equal(t, [2]float64{0.25, 0.5}, tex.Transform.Offset)
	assert.Equal(t, [2]float64{2, 2}, tex.Transform.Scale)
	tc, ok := tex.Transform.TexCoord.Get()
	require.True(t, ok)
	assert.Equal(t, uint32(1), tc)
}

func TestDecodeTextureBasisuSource(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},
		"extensionsUsed":["KHR_texture_basisu"],
		"textures":[{"extensions":{"KHR_texture_basisu":{"source":2}}}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DecodeOptions{})
	require.NoError(t, err)

	tex := asset.Textures[0]
	assert.False(t, tex.Source.Some())
	idx, ok := tex.BasisuSource.Get()
	require.True(t, ok)
	assert.Equal(t, uint32(2), idx)
}

func TestDecodeMeshoptCompressedBufferView(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},
		"extensionsUsed":["EXT_meshopt_compression"],
		"buffers":[{"byteLength":100}],
		"bufferViews":[{"buffer":0,"byteOffset":0,"byteLength":10,
			"extensions":{"EXT_meshopt_compression":{"buffer":0,"byteOffset":0,"byteLength":10,"byteStride":12,"count":5,"mode":"TRIANGLES","filter":"OCTAHEDRAL"}}}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DecodeOptions{})
	require.NoError(t, err)

	bv := asset.BufferViews[0]
	require.NotNil(t, bv.Compressed)
	assert.Equal(t, 5, bv.Compressed.Count)
	assert.Equal(t, CompressionTriangles, bv.Compressed.Mode)
	assert.Equal(t, CompressionFilterOctahedral, bv.Compressed.Filter)
}

func TestDecodePrimitiveVariantsAndDraco(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},
		"extensionsUsed":["KHR_materials_variants","KHR_draco_mesh_compression"],
		"meshes":[{"primitives":[{
			"attributes":{"POSITION":0},
			"extensions":{
				"KHR_materials_variants":{"mappings":[{"variants":[0,1],"material":2}]},
				"KHR_draco_mesh_compression":{"bufferView":3,"attributes":{"POSITION":0}}
			}
		}]}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DecodeOptions{})
	require.NoError(t, err)

	prim := asset.Meshes[0].Primitives[0]
	require.Len(t, prim.Variants, 1)
	assert.Equal(t, []int{0, 1}, prim.Variants[0].Variants)
	matIdx, ok := prim.Variants[0].Material.Get()
	require.True(t, ok)
	assert.Equal(t, uint32(2), matIdx)

	require.NotNil(t, prim.Draco)
	assert.Equal(t, 3, prim.Draco.BufferView)
	assert.Equal(t, 0, prim.Draco.Attributes["POSITION"])
}

func TestDecodeNodeGPUInstancing(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},
		"extensionsUsed":["EXT_mesh_gpu_instancing"],
		"nodes":[{"mesh":0,"extensions":{"EXT_mesh_gpu_instancing":{"attributes":{"TRANSLATION":0,"ROTATION":1}}}}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DecodeOptions{})
	require.NoError(t, err)

	n := asset.Nodes[0]
	require.NotNil(t, n.Instancing)
	assert.Equal(t, 0, n.Instancing.Attributes["TRANSLATION"])
	assert.Equal(t, 1, n.Instancing.Attributes["ROTATION"])
}

func TestValidateRejectsMaterialExtensionWithoutProvenance(t *testing.T) {
	asset := &Asset{
		Metadata:     Metadata{Version: "2.0"},
		DefaultScene: NoIndex,
		Materials: []Material{{
			AlphaMode:   "OPAQUE",
			AlphaCutoff: 0.5,
			Clearcoat:   &MaterialClearcoat{ClearcoatFactor: 1},
			IOR:         NoFloat64,
			Dispersion:  NoFloat64,
		}},
	}
	err := Validate(asset)
	assert.ErrorIs(t, err, InvalidGltf)
}

func TestValidateAcceptsCamerasAndLights(t *testing.T) {
	asset := &Asset{
		Metadata:     Metadata{Version: "2.0"},
		DefaultScene: NoIndex,
		Cameras: []Camera{{
			Kind:        CameraPerspective,
			Perspective: Perspective{Yfov: 1, Znear: 0.1, Zfar: NoFloat64, AspectRatio: NoFloat64},
		}},
		Lights: []Light{{Kind: "spot", Color: [3]float64{1, 1, 1}, Intensity: 1, Range: NoFloat64,
			SpotInner: OptFloat64(0.1), SpotOuter: OptFloat64(0.5)}},
	}
	assert.NoError(t, Validate(asset))
}

func TestValidateRejectsBadSpotConeAngles(t *testing.T) {
	asset := &Asset{
		Metadata:     Metadata{Version: "2.0"},
		DefaultScene: NoIndex,
		Lights: []Light{{Kind: "spot", Range: NoFloat64,
			SpotInner: OptFloat64(0.5), SpotOuter: OptFloat64(0.1)}},
	}
	err := Validate(asset)
	assert.ErrorIs(t, err, InvalidGltf)
}

func TestValidateRejectsSkinnedNodeMissingJoints(t *testing.T) {
	asset := &Asset{
		Metadata:     Metadata{Version: "2.0"},
		DefaultScene: NoIndex,
		Meshes: []Mesh{{Primitives: []Primitive{{Attributes: map[string]int{"POSITION": 0},
			Indices: NoIndex, Material: NoIndex}}}},
		Skins: []Skin{{InverseBindMatrices: NoIndex, Skeleton: NoIndex}},
		Nodes: []Node{{Mesh: OptIndex(0), Skin: OptIndex(0), Camera: NoIndex}},
		Accessors: []Accessor{{BufferView: NoIndex, Type: TypeVec3, ComponentType: ComponentFloat,
			Min: &AccessorBoundsArray{Kind: BoundsFloat64, Floats: []float64{0, 0, 0}},
			Max: &AccessorBoundsArray{Kind: BoundsFloat64, Floats: []float64{1, 1, 1}}}},
	}
	err := Validate(asset)
	assert.ErrorIs(t, err, InvalidGltf)
}
