package gltfkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrite3d/gltfkit/bytesrc"
)

const minimalJSON = `{"asset":{"version":"2.0"}}`

func TestDecodeMinimalDocument(t *testing.T) {
	src := bytesrc.NewMemorySource([]byte(minimalJSON), 0)
	asset, err := Decode(src, DecodeOptions{DontRequireValidAssetMember: true})
	require.NoError(t, err)
	assert.Equal(t, "2.0", asset.Metadata.Version)
}

func TestDecodeMissingAssetVersionFails(t *testing.T) {
	src := bytesrc.NewMemorySource([]byte(`{}`), 0)
	_, err := Decode(src, DecodeOptions{})
	assert.ErrorIs(t, err, InvalidOrMissingAssetField)
}

func TestDecodeUnsupportedVersionFails(t *testing.T) {
	src := bytesrc.NewMemorySource([]byte(`{"asset":{"version":"1.0"}}`), 0)
	_, err := Decode(src, DecodeOptions{})
	assert.ErrorIs(t, err, UnsupportedVersion)
}

func TestDecodeUnknownRequiredExtensionFails(t *testing.T) {
	src := bytesrc.NewMemorySource([]byte(`{"asset":{"version":"2.0"},"extensionsRequired":["KHR_totally_made_up"]}`), 0)
	_, err := Decode(src, DecodeOptions{})
	assert.ErrorIs(t, err, UnknownRequiredExtension)
}

func TestDecodeDedupesExtensionsRequired(t *testing.T) {
	src := bytesrc.NewMemorySource([]byte(
		`{"asset":{"version":"2.0"},"extensionsRequired":["KHR_materials_unlit","KHR_materials_unlit"]}`), 0)
	asset, err := Decode(src, DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"KHR_materials_unlit"}, asset.ExtensionsRequired)
}

func TestDecodeDataURIBuffer(t *testing.T) {
	// "hi" base64-encoded is "aGk=".
	doc := `{"asset":{"version":"2.0"},"buffers":[{"byteLength":2,"uri":"data:application/octet-stream;base64,aGk="}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DefaultDecodeOptions())
	require.NoError(t, err)
	require.Len(t, asset.Buffers, 1)
	data, ok := asset.Buffers[0].Source.Data()
	require.True(t, ok)
	assert.Equal(t, "hi", string(data))
}

func TestDecodeNodeDefaultsToIdentityTRS(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"nodes":[{"name":"root"}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, asset.Nodes, 1)
	n := asset.Nodes[0]
	assert.Equal(t, TransformTRS, n.TransformOf)
	assert.Equal(t, [3]float64{0, 0, 0}, n.Translation)
	assert.Equal(t, DefaultRotation, n.Rotation)
	assert.Equal(t, DefaultScale, n.Scale)
}

func TestDecodeDecomposesNodeMatrixWhenRequested(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"nodes":[{"matrix":[1,0,0,0, 0,1,0,0, 0,0,1,0, 5,6,7,1]}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DecodeOptions{DecomposeNodeMatrices: true})
	require.NoError(t, err)
	n := asset.Nodes[0]
	assert.Equal(t, TransformTRS, n.TransformOf)
	assert.InDelta(t, 5, n.Translation[0], 1e-9)
	assert.InDelta(t, 6, n.Translation[1], 1e-9)
	assert.InDelta(t, 7, n.Translation[2], 1e-9)
}

func TestDecodeGenerateMeshIndices(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},
		"accessors":[{"componentType":5126,"count":300,"type":"VEC3"}],
		"meshes":[{"primitives":[{"attributes":{"POSITION":0}}]}]}`
	src := bytesrc.NewMemorySource([]byte(doc), 0)
	asset, err := Decode(src, DecodeOptions{GenerateMeshIndices: true})
	require.NoError(t, err)

	prim := asset.Meshes[0].Primitives[0]
	require.True(t, prim.Indices.Some())
	idx, _ := prim.Indices.Get()
	generated := asset.Accessors[idx]
	assert.Equal(t, 300, generated.Count)
	assert.Equal(t, TypeScalar, generated.Type)
	assert.Equal(t, ComponentUnsignedShort, generated.ComponentType)
}

func TestDecodeMinifiesIntoPrivateBufferNotCallerSlice(t *testing.T) {
	original := []byte("{\n  \"asset\": {\"version\": \"2.0\"}\n}\n")
	snapshot := append([]byte(nil), original...)
	src := bytesrc.NewMemorySource(original, 0)
	_, err := Decode(src, DecodeOptions{MinimiseJsonBeforeParsing: true})
	require.NoError(t, err)
	assert.Equal(t, snapshot, original)
}
