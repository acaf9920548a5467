package gltfkit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrite3d/gltfkit/bytesrc"
)

func TestEncodeJSONRoundTripsMinimalAsset(t *testing.T) {
	asset := &Asset{Metadata: Metadata{Version: "2.0", Generator: "gltfkit"}}
	out, err := EncodeJSON(asset, EncodeOptions{})
	require.NoError(t, err)

	src := bytesrc.NewMemorySource(out, 0)
	decoded, err := Decode(src, DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, "2.0", decoded.Metadata.Version)
	assert.Equal(t, "gltfkit", decoded.Metadata.Generator)
}

func TestEncodeJSONInlinesBufferAsDataURI(t *testing.T) {
	asset := &Asset{
		Metadata: Metadata{Version: "2.0"},
		Buffers: []Buffer{
			{ByteLength: 3, Source: NewArrayDataSource([]byte{1, 2, 3}, "")},
			{ByteLength: 2, Source: NewArrayDataSource([]byte{9, 9}, "")},
		},
	}
	out, err := EncodeJSON(asset, EncodeOptions{})
	require.NoError(t, err)

	src := bytesrc.NewMemorySource(out, 0)
	decoded, err := Decode(src, DefaultDecodeOptions())
	require.NoError(t, err)
	require.Len(t, decoded.Buffers, 2)
	data, ok := decoded.Buffers[1].Source.Data()
	require.True(t, ok)
	assert.Equal(t, []byte{9, 9}, data)
}

func TestEncodeGLBAssetEmbedsBufferZeroAsBinChunk(t *testing.T) {
	asset := &Asset{
		Metadata: Metadata{Version: "2.0"},
		Buffers:  []Buffer{{ByteLength: 4, Source: NewArrayDataSource([]byte{10, 20, 30, 40}, "")}},
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeGLBAsset(&buf, asset, EncodeOptions{}))

	src := bytesrc.NewMemorySource(buf.Bytes(), 0)
	glbDoc, err := DecodeGLB(src)
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 40}, glbDoc.Binary)
}

func TestEncodeJSONPrettyPrintIndents(t *testing.T) {
	asset := &Asset{Metadata: Metadata{Version: "2.0"}}
	out, err := EncodeJSON(asset, EncodeOptions{PrettyPrintJson: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n")
}
