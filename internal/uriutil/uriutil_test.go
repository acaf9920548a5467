package uriutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURI(t *testing.T) {
	v := Parse("data:application/octet-stream;base64,AAA=")
	assert.True(t, v.Valid())
	assert.True(t, v.IsDataURI())
	assert.False(t, v.IsLocalPath())
}

func TestParseLocalRelativePath(t *testing.T) {
	v := Parse("buffer0.bin")
	assert.True(t, v.Valid())
	assert.False(t, v.IsDataURI())
	assert.True(t, v.IsLocalPath())
	assert.Equal(t, "", v.Scheme())
}

func TestParseRemoteHTTPURI(t *testing.T) {
	v := Parse("https://example.com/buffer0.bin")
	assert.True(t, v.Valid())
	assert.False(t, v.IsDataURI())
	assert.False(t, v.IsLocalPath())
	assert.Equal(t, "https", v.Scheme())
}

func TestParseEmptyIsInvalid(t *testing.T) {
	v := Parse("")
	assert.False(t, v.Valid())
}

func TestNewOwnedPercentDecodesLocalPath(t *testing.T) {
	o, err := NewOwned("sub%20dir/mesh.bin")
	require.NoError(t, err)
	assert.True(t, o.IsLocalPath())
	assert.False(t, o.IsDataURI())
	assert.Equal(t, "sub dir/mesh.bin", o.Path())
}

func TestNewOwnedPreservesDataPayloadUndecoded(t *testing.T) {
	o, err := NewOwned("data:application/octet-stream;base64,AAA=")
	require.NoError(t, err)
	assert.True(t, o.IsDataURI())
	assert.Equal(t, "application/octet-stream;base64,AAA=", o.DataPayload())
}

func TestFspathJoinsRelativePathToDir(t *testing.T) {
	o, err := NewOwned("buffer0.bin")
	require.NoError(t, err)
	assert.Equal(t, "models/buffer0.bin", Fspath("models", o))
}

func TestFspathLeavesAbsolutePathUnchanged(t *testing.T) {
	o, err := NewOwned("/abs/buffer0.bin")
	require.NoError(t, err)
	assert.Equal(t, "/abs/buffer0.bin", Fspath("models", o))
}
