package gltfkit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrite3d/gltfkit/bytesrc"
)

func TestEncodeDecodeGLBRoundTrip(t *testing.T) {
	jsonChunk := []byte(`{"asset":{"version":"2.0"}}`)
	binChunk := []byte{1, 2, 3, 4, 5}

	var buf bytes.Buffer
	require.NoError(t, EncodeGLB(&buf, jsonChunk, binChunk))

	src := bytesrc.NewMemorySource(buf.Bytes(), 0)
	doc, err := DecodeGLB(src)
	require.NoError(t, err)

	assert.Equal(t, uint32(glbMagic), doc.Header.Magic)
	assert.Equal(t, uint32(2), doc.Header.Version)
	assert.Equal(t, jsonChunk, doc.JSON[:len(jsonChunk)])
	assert.Equal(t, binChunk, doc.Binary[:len(binChunk)])
}

func TestDecodeGLBRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGLB(&buf, []byte(`{}`), nil))
	corrupted := buf.Bytes()
	corrupted[0] = 0x00

	src := bytesrc.NewMemorySource(corrupted, 0)
	_, err := DecodeGLB(src)
	assert.ErrorIs(t, err, InvalidGLB)
}

func TestDecodeGLBRejectsUnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGLB(&buf, []byte(`{}`), nil))
	corrupted := buf.Bytes()
	corrupted[4] = 3 // version byte, little-endian low byte

	src := bytesrc.NewMemorySource(corrupted, 0)
	_, err := DecodeGLB(src)
	assert.ErrorIs(t, err, UnsupportedVersion)
}

func TestEncodeGLBPadsJSONChunkTo4ByteBoundary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeGLB(&buf, []byte(`{"a":1}`), nil)) // 7 bytes, needs 1 pad byte

	src := bytesrc.NewMemorySource(buf.Bytes(), 0)
	doc, err := DecodeGLB(src)
	require.NoError(t, err)
	assert.Equal(t, 0, len(doc.JSON)%4)
	assert.Equal(t, byte(' '), doc.JSON[len(doc.JSON)-1])
}

func TestDecodeGLBMinimalNoBuffer(t *testing.T) {
	// spec.md §8.2 scenario 1: minimal GLB with no BIN chunk must still decode.
	var buf bytes.Buffer
	require.NoError(t, EncodeGLB(&buf, []byte(`{"asset":{"version":"2.0"}}`), nil))

	src := bytesrc.NewMemorySource(buf.Bytes(), 0)
	doc, err := DecodeGLB(src)
	require.NoError(t, err)
	assert.Nil(t, doc.Binary)
}
